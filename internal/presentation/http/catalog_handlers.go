package httppresentation

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Zhima-Mochi/plantbay/internal/application/auth"
	domainCatalog "github.com/Zhima-Mochi/plantbay/internal/domain/catalog"
)

type adjustQuantityRequest struct {
	QuantityToUpdate int    `json:"quantityToUpdate"`
	Status           string `json:"status"`
}

func (h *Handler) handleCreatePlant(w http.ResponseWriter, r *http.Request) {
	var item domainCatalog.Item
	if err := decodeJSON(w, r, &item); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	res, err := h.catalog.CreateItem(r.Context(), &item)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleListPlants(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGetPlant(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.GetItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleDeletePlant(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalog.DeleteItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleListSellerPlants lists the caller's own plants; the email comes from the session.
func (h *Handler) handleListSellerPlants(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		h.writeDomainError(w, r, auth.ErrUnauthorized)
		return
	}
	items, err := h.catalog.ListItemsForSeller(r.Context(), p.Email)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) handleAdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req adjustQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	res, err := h.orders.AdjustQuantity(r.Context(), mux.Vars(r)["id"], req.QuantityToUpdate, req.Status)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
