package httppresentation

import (
	"net/http"

	"github.com/gorilla/mux"

	domainOrder "github.com/Zhima-Mochi/plantbay/internal/domain/order"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var o domainOrder.Order
	if err := decodeJSON(w, r, &o); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	res, err := h.orders.PlaceOrder(r.Context(), &o)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleCustomerOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.orders.ListOrdersForCustomer(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleSellerOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.orders.ListOrdersForSeller(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	res, err := h.orders.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.orders.DeleteOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
