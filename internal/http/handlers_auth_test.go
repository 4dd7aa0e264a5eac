package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthHandlers(s *stubSessions) *AuthHandlers {
	return &AuthHandlers{Svc: s, Guard: newGuard(s)}
}

func acceptStudent(username, password string) domainauth.Result {
	if username == "u" && password == "p" {
		return domainauth.Result{Success: true, User: studentUser()}
	}
	return domainauth.Result{Message: "Invalid username or password"}
}

func decodeLogin(t *testing.T, w *httptest.ResponseRecorder) loginResponse {
	t.Helper()
	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLogin_JSONSuccessReturnsLanding(t *testing.T) {
	h := newAuthHandlers(&stubSessions{loginFunc: acceptStudent})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"u","password":"p"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeLogin(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, domainauth.StudentLandingPath, resp.Redirect)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u", resp.User.Username)
}

func TestLogin_HonorsRedirectURI(t *testing.T) {
	h := newAuthHandlers(&stubSessions{loginFunc: acceptStudent})

	req := httptest.NewRequest(http.MethodPost, "/login?redirect_uri=%2Freports%2F7", strings.NewReader(`{"username":"u","password":"p"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/reports/7", decodeLogin(t, w).Redirect)
}

func TestLogin_RejectsExternalRedirect(t *testing.T) {
	h := newAuthHandlers(&stubSessions{loginFunc: acceptStudent})

	body := `{"username":"u","password":"p","redirectUri":"https://evil.example/"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domainauth.StudentLandingPath, decodeLogin(t, w).Redirect)
}

func TestLogin_Failure(t *testing.T) {
	sessions := &stubSessions{loginFunc: acceptStudent}
	h := newAuthHandlers(sessions)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"u","password":"nope"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeLogin(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid username or password", resp.Message)
	assert.False(t, sessions.snap.IsAuthenticated())
}

func TestLogin_InvalidJSON(t *testing.T) {
	h := newAuthHandlers(&stubSessions{loginFunc: acceptStudent})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_json")
}

func TestLogin_BrowserFormRedirects(t *testing.T) {
	h := newAuthHandlers(&stubSessions{loginFunc: acceptStudent})

	form := url.Values{"username": {"u"}, "password": {"p"}, "redirect_uri": {"/topics"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/topics", w.Header().Get("Location"))
}

func TestLoginPage(t *testing.T) {
	t.Run("external redirect target collapses to root", func(t *testing.T) {
		h := newAuthHandlers(&stubSessions{})
		req := httptest.NewRequest(http.MethodGet, "/login?redirect_uri=https%3A%2F%2Fevil.example", nil)
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()
		h.LoginPage(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="redirect_uri" value="/"`)
		assert.NotContains(t, w.Body.String(), "evil.example")
	})

	t.Run("signed-in browser skips the form", func(t *testing.T) {
		h := newAuthHandlers(signedIn(adminUser()))
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()
		h.LoginPage(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, domainauth.AdminLandingPath, w.Header().Get("Location"))
	})
}

func TestRegister(t *testing.T) {
	sessions := &stubSessions{registerRes: domainauth.Result{Success: true, Message: "Registration successful. You can now sign in"}}
	h := newAuthHandlers(sessions)

	body := `{"firstName":"A","lastName":"B","username":"u","email":"e@x.io","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, sessions.registerIn)
	assert.Equal(t, "e@x.io", sessions.registerIn.Email)
	assert.False(t, sessions.snap.IsAuthenticated(), "registration never signs in")
}

func TestRegister_Failure(t *testing.T) {
	sessions := &stubSessions{registerRes: domainauth.Result{Message: "Error: Username is already taken!"}}
	h := newAuthHandlers(sessions)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"u"}`))
	w := httptest.NewRecorder()
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Error: Username is already taken!", decodeLogin(t, w).Message)
}

func TestLogout(t *testing.T) {
	sessions := signedIn(studentUser())
	h := newAuthHandlers(sessions)

	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, sessions.logouts)
	assert.False(t, sessions.snap.IsAuthenticated())
}

func TestLogout_BrowserFormRedirectsToLogin(t *testing.T) {
	h := newAuthHandlers(signedIn(studentUser()))

	req := httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Logout(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestStatus_NeverExposesToken(t *testing.T) {
	h := newAuthHandlers(signedIn(studentUser()))

	w := httptest.NewRecorder()
	h.Status(w, httptest.NewRequest(http.MethodGet, "/auth/status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "authenticated", resp.State)
	assert.True(t, resp.IsAuthenticated)
	assert.NotContains(t, w.Body.String(), `"T"`)
}
