package httppresentation

import (
	"net/http"
	"time"

	"github.com/Zhima-Mochi/plantbay/internal/application/auth"
)

const sessionCookie = "token"

type successResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) handleIssueSession(w http.ResponseWriter, r *http.Request) {
	var id auth.Identity
	if err := decodeJSON(w, r, &id); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	token, exp, err := h.sessions.Issue(id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	http.SetCookie(w, h.sessionCookie(token, exp))
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) handleLogout(w http.ResponseWriter, _ *http.Request) {
	c := h.sessionCookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) sessionCookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if h.opts.SecureCookies {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
