package httppresentation

import (
	"net/http"

	"github.com/gorilla/mux"

	appaccount "github.com/Zhima-Mochi/plantbay/internal/application/account"
	"github.com/Zhima-Mochi/plantbay/internal/application/auth"
	appcatalog "github.com/Zhima-Mochi/plantbay/internal/application/catalog"
	apporder "github.com/Zhima-Mochi/plantbay/internal/application/order"
	domainAccount "github.com/Zhima-Mochi/plantbay/internal/domain/account"
	"github.com/Zhima-Mochi/plantbay/internal/observability"
	"github.com/Zhima-Mochi/plantbay/internal/observability/logctx"
)

const (
	componentHTTPHandler = "http_server"
	greeting             = "Hello from PlantBay Server.."
)

// Services are the use cases reachable over HTTP.
type Services struct {
	Accounts *appaccount.Service
	Catalog  *appcatalog.Service
	Orders   *apporder.Service
	Sessions *auth.Sessions
}

type Options struct {
	// SecureCookies switches the session cookie to Secure + SameSite=None.
	SecureCookies bool
	// Metrics serves GET /metrics when set.
	Metrics http.Handler
}

type Handler struct {
	accounts *appaccount.Service
	catalog  *appcatalog.Service
	orders   *apporder.Service
	sessions *auth.Sessions
	opts     Options

	log          observability.Logger
	reqCounter   observability.Counter   // http_requests_total{method,route,status}
	durHistogram observability.Histogram // http_request_duration_seconds{method,route,status}
}

func NewHandler(svc Services, opts Options, tel observability.Observability) *Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()
	return &Handler{
		accounts:     svc.Accounts,
		catalog:      svc.Catalog,
		orders:       svc.Orders,
		sessions:     svc.Sessions,
		opts:         opts,
		log:          tel.Logger().With(observability.F("component", componentHTTPHandler)),
		reqCounter:   metrics.Counter(observability.MHTTPRequests),
		durHistogram: metrics.Histogram(observability.MHTTPRequestDuration),
	}
}

func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()

	session := auth.Session()
	admin := auth.Role(h.accounts, domainAccount.RoleAdmin)
	seller := auth.Role(h.accounts, domainAccount.RoleSeller)

	h.handle(r, http.MethodGet, "/", h.handleRoot)
	h.handle(r, http.MethodGet, "/health", h.handleHealth)

	h.handle(r, http.MethodPost, "/jwt", h.handleIssueSession)
	h.handle(r, http.MethodGet, "/logout", h.handleLogout)

	h.handle(r, http.MethodPost, "/users/{email}", h.handleUpsertAccount)
	h.handle(r, http.MethodGet, "/all-users/{email}", h.handleListAccounts, session, admin)
	h.handle(r, http.MethodPatch, "/users/role/{email}", h.handleSetRole, session, admin)
	h.handle(r, http.MethodPatch, "/users/{email}", h.handleRequestRoleChange, session)
	h.handle(r, http.MethodGet, "/users/role/{email}", h.handleGetRole)

	// /plants/seller must be registered before /plants/{id}.
	h.handle(r, http.MethodGet, "/plants/seller", h.handleListSellerPlants, session, seller)
	h.handle(r, http.MethodPost, "/plants", h.handleCreatePlant)
	h.handle(r, http.MethodGet, "/plants", h.handleListPlants)
	h.handle(r, http.MethodGet, "/plants/{id}", h.handleGetPlant)
	h.handle(r, http.MethodDelete, "/plants/{id}", h.handleDeletePlant, session, seller)
	h.handle(r, http.MethodPatch, "/plants/quantity/{id}", h.handleAdjustQuantity)

	h.handle(r, http.MethodPost, "/orders", h.handlePlaceOrder, session)
	h.handle(r, http.MethodGet, "/customers-orders/{email}", h.handleCustomerOrders)
	h.handle(r, http.MethodGet, "/manage-orders/{email}", h.handleSellerOrders, session, seller)
	h.handle(r, http.MethodPatch, "/orders/status/{id}", h.handleUpdateOrderStatus)
	h.handle(r, http.MethodDelete, "/orders/{id}", h.handleDeleteOrder)

	if h.opts.Metrics != nil {
		r.Handle("/metrics", h.opts.Metrics).Methods(http.MethodGet)
	}
	return r
}

// handle wires one route: Trace → request logger → HTTP metrics → access log → session → guard → handler.
func (h *Handler) handle(r *mux.Router, method, path string, handler http.HandlerFunc, caps ...auth.Capability) {
	route := method + " " + path
	wrapped := h.withTrace(
		ObservabilityMiddleware(h.log, func(r *http.Request) string {
			return r.Header.Get(headerRequestID)
		})(
			h.withHTTPMetrics(
				h.withAccessLog(
					h.withSession(h.guard(handler, caps...)),
				),
			),
		),
	)
	r.Handle(path, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		wrapped.ServeHTTP(w, req.WithContext(contextWithRoute(req.Context(), route)))
	})).Methods(method)
}

// withSession attaches the principal of a valid session cookie. Missing or bad tokens leave the request anonymous.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		p, err := h.sessions.Verify(cookie.Value)
		if err != nil {
			logctx.FromOr(r.Context(), h.log).Debug("session_rejected", observability.F("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	})
}

func (h *Handler) guard(next http.HandlerFunc, caps ...auth.Capability) http.Handler {
	if len(caps) == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Authorize(r.Context(), caps...); err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		next(w, r)
	})
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(greeting))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
