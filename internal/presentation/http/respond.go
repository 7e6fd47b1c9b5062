package httppresentation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	appaccount "github.com/Zhima-Mochi/plantbay/internal/application/account"
	"github.com/Zhima-Mochi/plantbay/internal/application/auth"
	appcatalog "github.com/Zhima-Mochi/plantbay/internal/application/catalog"
	apporder "github.com/Zhima-Mochi/plantbay/internal/application/order"
	domainAccount "github.com/Zhima-Mochi/plantbay/internal/domain/account"
	domainCatalog "github.com/Zhima-Mochi/plantbay/internal/domain/catalog"
	domainOrder "github.com/Zhima-Mochi/plantbay/internal/domain/order"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
	"github.com/Zhima-Mochi/plantbay/internal/observability"
	"github.com/Zhima-Mochi/plantbay/internal/observability/logctx"
)

const maxBodyBytes = 1 << 20

const internalErrorMessage = "internal server error"

var errBadRequest = errors.New("malformed request body")

type messageResponse struct {
	Message string `json:"message"`
}

// decodeJSON reads an optional JSON body. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeDomainError maps service errors onto status codes and the {message} body.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var roleErr *auth.RoleError
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "unauthorized access")
	case errors.As(err, &roleErr):
		writeMessage(w, http.StatusForbidden, roleErr.Error())
	case errors.Is(err, auth.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "forbidden access")
	case errors.Is(err, domainOrder.ErrDelivered):
		writeMessage(w, http.StatusConflict, "You can not delete delivered order")
	case errors.Is(err, domainAccount.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domainAccount.ErrRequestPending):
		writeMessage(w, http.StatusNotFound, "User not found or request is pending")
	case errors.Is(err, domainCatalog.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Plant not found")
	case errors.Is(err, domainOrder.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, errBadRequest),
		errors.Is(err, store.ErrInvalidID),
		errors.Is(err, domainAccount.ErrInvalidRole),
		errors.Is(err, domainAccount.ErrEmailRequired),
		errors.Is(err, auth.ErrEmailRequired),
		errors.Is(err, appcatalog.ErrItemMissing),
		errors.Is(err, apporder.ErrOrderMissing):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		logctx.FromOr(r.Context(), h.log).Error("request_failed",
			observability.F("route", routeFromContext(r.Context())),
			observability.F("error", err.Error()),
			observability.F("repository", errors.Is(err, appaccount.ErrRepository) ||
				errors.Is(err, appcatalog.ErrRepository) ||
				errors.Is(err, apporder.ErrRepository)),
		)
		writeMessage(w, http.StatusInternalServerError, internalErrorMessage)
	}
}
