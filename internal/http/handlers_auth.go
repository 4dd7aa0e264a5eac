package httpx

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/guard"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
)

// SessionService defines the session operations the auth handlers need.
type SessionService interface {
	ports.SessionReader
	Login(ctx context.Context, username, password string) domainauth.Result
	Register(ctx context.Context, in domainauth.RegisterInput) domainauth.Result
	Logout(ctx context.Context)
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc    SessionService
	Guard  *guard.Guard
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	RedirectURI string `json:"redirectUri,omitempty"`
}

type loginResponse struct {
	Success  bool                     `json:"success"`
	Message  string                   `json:"message,omitempty"`
	User     *domainauth.UserIdentity `json:"user,omitempty"`
	Redirect string                   `json:"redirect,omitempty"`
}

type statusResponse struct {
	State           string                   `json:"state"`
	Loading         bool                     `json:"loading"`
	IsAuthenticated bool                     `json:"isAuthenticated"`
	CurrentUser     *domainauth.UserIdentity `json:"currentUser,omitempty"`
}

// Status reports the session state without exposing the token.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, _ *http.Request) {
	snap := h.Svc.Snapshot()
	WriteJSON(w, http.StatusOK, statusResponse{
		State:           snap.State().String(),
		Loading:         snap.Loading,
		IsAuthenticated: snap.IsAuthenticated(),
		CurrentUser:     snap.CurrentUser,
	})
}

var loginPageTmpl = template.Must(template.New("login").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Sign in - PFETrack</title></head>
<body>
<h1>Sign in</h1>
<form method="post" action="{{.Action}}">
<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
<input type="hidden" name="redirect_uri" value="{{.RedirectURI}}">
<label>Username <input name="username" autocomplete="username" required></label>
<label>Password <input name="password" type="password" autocomplete="current-password" required></label>
<button type="submit">Sign in</button>
</form>
</body>
</html>
`))

type loginPage struct {
	Action      string `json:"action"`
	RedirectURI string `json:"redirectUri"`
	CSRFToken   string `json:"csrfToken"`
}

// LoginPage is where the guard sends signed-out browsers. It echoes
// redirect_uri into the form so the remembered location survives the POST.
// Non-browser clients get the same fields as JSON.
// GET /login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	from := guard.SanitizePath(r.URL.Query().Get(guard.RedirectParam))
	if snap := h.Svc.Snapshot(); snap.IsAuthenticated() && isBrowserRequest(r) {
		http.Redirect(w, r, h.Guard.PostLoginDestination(from, snap.CurrentUser), http.StatusSeeOther)
		return
	}

	page := loginPage{Action: h.Guard.LoginPath(), RedirectURI: from, CSRFToken: GetCSRFToken(r)}
	if !isBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, page)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := loginPageTmpl.Execute(w, page); err != nil {
		h.logger().ErrorContext(r.Context(), "render login page", "error", err)
	}
}

// Login authenticates with username and password.
// POST /login?redirect_uri=<optional_redirect>. Accepts JSON or form bodies.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
			return
		}
		req = loginRequest{
			Username:    r.PostForm.Get("username"),
			Password:    r.PostForm.Get("password"),
			RedirectURI: r.PostForm.Get("redirect_uri"),
		}
	} else if !DecodeJSON(w, r, &req) {
		return
	}
	if req.RedirectURI == "" {
		req.RedirectURI = r.URL.Query().Get(guard.RedirectParam)
	}

	res := h.Svc.Login(r.Context(), req.Username, req.Password)
	if !res.Success {
		h.logger().InfoContext(r.Context(), "login rejected")
		WriteJSON(w, http.StatusUnauthorized, loginResponse{Message: res.Message})
		return
	}

	dest := h.Guard.PostLoginDestination(req.RedirectURI, res.User)
	if isFormRequest(r) && isBrowserRequest(r) {
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}
	WriteJSON(w, http.StatusOK, loginResponse{Success: true, User: res.User, Redirect: dest})
}

// Register creates an account. It never signs the user in.
// POST /register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var in domainauth.RegisterInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	res := h.Svc.Register(r.Context(), in)
	if !res.Success {
		WriteJSON(w, http.StatusBadRequest, loginResponse{Message: res.Message})
		return
	}
	WriteJSON(w, http.StatusCreated, loginResponse{Success: true, Message: res.Message})
}

// Logout ends the session. It always succeeds.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Svc.Logout(r.Context())
	if isFormRequest(r) && isBrowserRequest(r) {
		http.Redirect(w, r, h.Guard.LoginPath(), http.StatusSeeOther)
		return
	}
	WriteJSON(w, http.StatusOK, loginResponse{Success: true})
}

func isFormRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}
