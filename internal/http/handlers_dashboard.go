package httpx

import (
	"context"
	"net/http"

	"github.com/3issane/PFETRACKCODE212/internal/service"
)

// DashboardServiceInterface is the read side of the dashboard aggregation.
type DashboardServiceInterface interface {
	Student(ctx context.Context) (*service.StudentDashboard, error)
	Admin(ctx context.Context) (*service.AdminDashboard, error)
}

// DashboardHandlers serves the landing views and the current user.
type DashboardHandlers struct {
	Svc DashboardServiceInterface
}

// Student serves GET /dashboard/student.
func (h *DashboardHandlers) Student(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.Student(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// Admin serves GET /dashboard/admin.
func (h *DashboardHandlers) Admin(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.Admin(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// Me serves GET /api/me from the user placed in context by RequireSession.
func Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication_required"})
		return
	}
	WriteJSON(w, http.StatusOK, user)
}
