package httpx

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok, "user must be in context")
		_, _ = w.Write([]byte(user.Username))
	})
}

func TestRequireSession_Suspend(t *testing.T) {
	sessions := &stubSessions{snap: domainauth.Snapshot{Loading: true, CurrentUser: studentUser()}}
	handler := RequireSession(newGuard(sessions))(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/student", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Empty(t, w.Header().Get("Location"), "no redirect while initializing")
}

func TestRequireSession_BrowserRedirect(t *testing.T) {
	handler := RequireSession(newGuard(&stubSessions{}))(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/student?tab=grades", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fdashboard%2Fstudent%3Ftab%3Dgrades", w.Header().Get("Location"))
}

func TestRequireSession_HTMXRedirect(t *testing.T) {
	handler := RequireSession(newGuard(&stubSessions{}))(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/student", nil)
	req.Header.Set("Hx-Request", "true")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fdashboard%2Fstudent", w.Header().Get("Hx-Redirect"))
	assert.Empty(t, w.Body.String())
}

func TestRequireSession_APIUnauthorized(t *testing.T) {
	handler := RequireSession(newGuard(&stubSessions{}))(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestRequireSession_Render(t *testing.T) {
	handler := RequireSession(newGuard(signedIn(studentUser())))(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/student", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		sessions *stubSessions
		want     int
	}{
		{"admin passes", signedIn(adminUser()), http.StatusOK},
		{"student forbidden", signedIn(studentUser()), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireSession(newGuard(tt.sessions))(RequireRole(domainauth.RoleAdmin)(okHandler(t)))
			req := httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRole_NoUserInContext(t *testing.T) {
	handler := RequireRole(domainauth.RoleAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIsBrowserRequest(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		accept string
		htmx   bool
		want   bool
	}{
		{"api path", "/api/me", "text/html", false, false},
		{"html accept", "/dashboard/student", "text/html,application/xhtml+xml", false, true},
		{"json accept", "/dashboard/student", "application/json", false, false},
		{"no accept", "/dashboard/student", "", false, true},
		{"htmx", "/dashboard/student", "application/json", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if tt.htmx {
				req.Header.Set("Hx-Request", "true")
			}
			assert.Equal(t, tt.want, isBrowserRequest(req))
		})
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "boom")
}

func TestLogging_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/brew"`)
}
