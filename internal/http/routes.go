package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/guard"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions  SessionService
	Guard     *guard.Guard
	Dashboard DashboardServiceInterface
	Logger    *slog.Logger // optional
}

// NewRouter creates the local web front: Recover → Logging → CSRF → mux.
func NewRouter(services RouterServices) http.Handler {
	if services.Sessions == nil || services.Guard == nil {
		panic("httpx: Sessions and Guard are required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	mux := http.NewServeMux()
	health := healthHandler(services.Sessions)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)

	registerAuthRoutes(mux, &AuthHandlers{Svc: services.Sessions, Guard: services.Guard, Logger: logger})

	protect := RequireSession(services.Guard)
	mux.Handle("GET /api/me", protect(http.HandlerFunc(Me)))
	if services.Dashboard != nil {
		registerDashboardRoutes(mux, &DashboardHandlers{Svc: services.Dashboard}, protect)
	}

	csrf := CSRFProtection(CSRFConfig{})
	return Recover(logger)(Logging(logger)(csrf(mux)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("GET "+h.Guard.LoginPath(), h.LoginPage)
	mux.HandleFunc("POST "+h.Guard.LoginPath(), h.Login)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /logout", h.Logout)
}

func registerDashboardRoutes(mux *http.ServeMux, h *DashboardHandlers, protect func(http.Handler) http.Handler) {
	mux.Handle("GET "+domainauth.StudentLandingPath, protect(http.HandlerFunc(h.Student)))
	admin := RequireRole(domainauth.RoleAdmin)
	mux.Handle("GET "+domainauth.AdminLandingPath, protect(admin(http.HandlerFunc(h.Admin))))
}
