package httppresentation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	appaccount "github.com/Zhima-Mochi/plantbay/internal/application/account"
	domainAccount "github.com/Zhima-Mochi/plantbay/internal/domain/account"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
)

type accountExistsResponse struct {
	Message string                 `json:"message"`
	IsExist *domainAccount.Account `json:"isExist"`
}

type setRoleRequest struct {
	Role string `json:"role"`
}

type roleResponse struct {
	Role domainAccount.Role `json:"role"`
}

func (h *Handler) handleUpsertAccount(w http.ResponseWriter, r *http.Request) {
	var profile domainAccount.Profile
	if err := decodeJSON(w, r, &profile); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	res, err := h.accounts.UpsertAccount(r.Context(), mux.Vars(r)["email"], profile)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if !res.Inserted {
		writeJSON(w, http.StatusOK, accountExistsResponse{Message: "User Already exist.", IsExist: res.Account})
		return
	}
	writeJSON(w, http.StatusOK, store.InsertResult{Acknowledged: true, InsertedID: res.Account.ID})
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAccountsExcept(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) handleSetRole(w http.ResponseWriter, r *http.Request) {
	var req setRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	res, err := h.accounts.SetRole(r.Context(), mux.Vars(r)["email"], req.Role)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleRequestRoleChange(w http.ResponseWriter, r *http.Request) {
	res, err := h.accounts.RequestRoleChange(r.Context(), mux.Vars(r)["email"])
	if errors.Is(err, appaccount.ErrNotFound) || errors.Is(err, appaccount.ErrRequestPending) {
		writeMessage(w, http.StatusNotFound, "User not found or request is pending")
		return
	}
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleGetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.accounts.GetRole(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roleResponse{Role: role})
}
