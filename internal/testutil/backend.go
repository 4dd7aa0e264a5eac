package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
)

// Backend is an httptest stand-in for the PFETrack REST backend.
// It serves /api/auth/login and /api/auth/register and lets tests add routes.
type Backend struct {
	Server *httptest.Server

	mux   *http.ServeMux
	mu    sync.Mutex
	users map[string]backendUser

	// Token is issued on successful login. Empty simulates a 200 without a token.
	Token string

	loginCalls    int
	registerCalls int
	authHeaders   []string
}

type backendUser struct {
	password string
	identity domainauth.UserIdentity
}

// NewBackend starts a stub backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		mux:   http.NewServeMux(),
		users: make(map[string]backendUser),
		Token: "T",
	}
	b.mux.HandleFunc("POST /api/auth/login", b.handleLogin)
	b.mux.HandleFunc("POST /api/auth/register", b.handleRegister)
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.authHeaders = append(b.authHeaders, r.Header.Get("Authorization"))
		b.mu.Unlock()
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Server.Close)
	return b
}

// SetToken changes the token issued by later logins.
func (b *Backend) SetToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Token = token
}

// BaseURL is the API root, mirroring the production "<host>/api".
func (b *Backend) BaseURL() string { return b.Server.URL + "/api" }

// Handle registers an extra route; patterns are relative to the API root.
func (b *Backend) Handle(pattern string, h http.HandlerFunc) {
	method, path, found := strings.Cut(pattern, " ")
	if !found {
		b.mux.HandleFunc("/api"+pattern, h)
		return
	}
	b.mux.HandleFunc(method+" /api"+path, h)
}

// AddUser registers credentials the login endpoint will accept.
func (b *Backend) AddUser(password string, user domainauth.UserIdentity) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[user.Username] = backendUser{password: password, identity: user}
}

// LoginCalls returns how many login requests were served.
func (b *Backend) LoginCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loginCalls
}

// RegisterCalls returns how many register requests were served.
func (b *Backend) RegisterCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registerCalls
}

// AuthHeaders returns the Authorization header of every request, in order.
func (b *Backend) AuthHeaders() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.authHeaders...)
}

// StudentUser is the canonical fixture identity.
func StudentUser() domainauth.UserIdentity {
	return domainauth.UserIdentity{
		ID:        1,
		FirstName: "A",
		LastName:  "B",
		Username:  "u",
		Email:     "e",
		Roles:     []domainauth.Role{domainauth.RoleStudent},
	}
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domainauth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	b.mu.Lock()
	b.loginCalls++
	u, ok := b.users[creds.Username]
	token := b.Token
	b.mu.Unlock()

	if !ok || u.password != creds.Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	WriteJSON(w, http.StatusOK, domainauth.LoginResponse{
		Token:     token,
		ID:        u.identity.ID,
		FirstName: u.identity.FirstName,
		LastName:  u.identity.LastName,
		Username:  u.identity.Username,
		Email:     u.identity.Email,
		Roles:     u.identity.Roles,
	})
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in domainauth.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.registerCalls++
	if _, exists := b.users[in.Username]; exists {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Error: Username is already taken!"})
		return
	}
	b.users[in.Username] = backendUser{
		password: in.Password,
		identity: domainauth.UserIdentity{
			ID:        int64(len(b.users) + 1),
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Username:  in.Username,
			Email:     in.Email,
			Roles:     []domainauth.Role{domainauth.RoleStudent},
		},
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully!"})
}
