package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	apperrors "github.com/3issane/PFETRACKCODE212/internal/errors"
	"github.com/3issane/PFETRACKCODE212/internal/gateway"
	obserrors "github.com/3issane/PFETRACKCODE212/internal/observability/errors"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
	"github.com/3issane/PFETRACKCODE212/internal/tokens"
)

// User-facing failure and success messages.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgLoginFailed        = "Login failed. Please try again"
	MsgSessionSaveFailed  = "Signed in, but the session could not be saved. Please try again"
	MsgRegisterFailed     = "Registration failed. Please try again"
	MsgRegistered         = "Registration successful. You can now sign in"
)

// SessionConfig holds optional tuning for SessionManager.
type SessionConfig struct {
	Logger *slog.Logger
	// Now overrides the clock used for token expiry checks.
	Now func() time.Time
	// LogoutOnUnauthorized ends the session when an authenticated request gets a 401.
	LogoutOnUnauthorized bool
}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Store  ports.CredentialStore // Required
	API    ports.AuthAPI         // Required
	Config SessionConfig         // Optional
}

// SessionManager is the authentication state machine and the only writer of
// the credential store. It starts Initializing and moves between
// Unauthenticated and Authenticated for the rest of the process lifetime.
type SessionManager struct {
	store       ports.CredentialStore
	api         ports.AuthAPI
	validator   *InputValidator
	logger      *slog.Logger
	now         func() time.Time
	logoutOn401 bool

	initOnce sync.Once

	// mu serializes commits: a store write and the matching in-memory update.
	mu    sync.Mutex
	state domainauth.Snapshot

	lmu       sync.Mutex
	listeners map[uint64]func(domainauth.Snapshot)
	nextID    uint64
}

var (
	_ ports.SessionReader    = (*SessionManager)(nil)
	_ ports.ResponseObserver = (*SessionManager)(nil)
)

// NewSessionManager constructs a manager in the Initializing state.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	if opts.Store == nil {
		panic("service: SessionManager requires a credential store")
	}
	if opts.API == nil {
		panic("service: SessionManager requires an auth API")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Config.Now
	if now == nil {
		now = time.Now
	}
	return &SessionManager{
		store:       opts.Store,
		api:         opts.API,
		validator:   NewInputValidator(),
		logger:      logger.With("component", "session"),
		now:         now,
		logoutOn401: opts.Config.LogoutOnUnauthorized,
		state:       domainauth.Snapshot{Loading: true},
		listeners:   make(map[uint64]func(domainauth.Snapshot)),
	}
}

// Initialize restores the persisted session. It runs once; later calls wait
// for the first to finish and return. No network call is made.
func (m *SessionManager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() { m.initialize(context.WithoutCancel(ctx)) })
}

func (m *SessionManager) initialize(ctx context.Context) {
	token, err := m.store.ReadToken(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "read stored token failed; starting signed out",
			"error_class", obserrors.Classify(err), "error", err)
		token = ""
	}
	user, err := m.store.ReadUser(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "read stored user failed; starting signed out",
			"error_class", obserrors.Classify(err), "error", err)
		user = nil
	}

	restored := token != "" && user.Valid()
	if restored && tokens.Expired(token, m.now()) {
		m.logger.InfoContext(ctx, "stored token has expired")
		restored = false
	}

	m.mu.Lock()
	prev := m.state
	if restored {
		m.state = domainauth.Snapshot{CurrentUser: user.Clone(), Token: token}
	} else {
		if token != "" || user != nil {
			m.logger.InfoContext(ctx, "discarding incomplete stored session",
				"has_token", token != "", "has_user", user != nil)
		}
		if clearErr := m.store.ClearSession(ctx); clearErr != nil {
			m.logger.WarnContext(ctx, "clear stored session failed",
				"error_class", obserrors.Classify(clearErr), "error", clearErr)
		}
		m.state = domainauth.Snapshot{}
	}
	next := m.snapshotLocked()
	m.mu.Unlock()

	m.transitioned(ctx, prev, next)
}

// Login authenticates against the backend and, on success, persists and
// publishes the new session. Failures never change state and come back as a
// Result with a user-safe message.
func (m *SessionManager) Login(ctx context.Context, username, password string) (res domainauth.Result) {
	defer m.recoverResult(ctx, "login", MsgLoginFailed, &res)
	m.Initialize(ctx)

	creds := domainauth.Credentials{Username: username, Password: password}
	if err := m.validator.Struct(creds); err != nil {
		return failure(validationMessage(err))
	}

	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		m.logger.WarnContext(ctx, "login request failed",
			"error_class", obserrors.Classify(err), "code", apperrors.Classify(err))
		return failure(loginFailureMessage(err))
	}
	if resp.Token == "" {
		m.logger.InfoContext(ctx, "login response carried no token")
		return failure(MsgInvalidCredentials)
	}
	user := resp.Identity()
	if !user.Valid() {
		m.logger.WarnContext(ctx, "login response carried no usable identity")
		return failure(MsgLoginFailed)
	}

	// A result that arrives after the caller gave up still commits; the last writer wins.
	commitCtx := context.WithoutCancel(ctx)
	m.mu.Lock()
	if err := m.store.WriteSession(commitCtx, resp.Token, user); err != nil {
		m.mu.Unlock()
		m.logger.ErrorContext(ctx, "persist session failed",
			"error_class", obserrors.Classify(err), "error", err)
		return failure(MsgSessionSaveFailed)
	}
	prev := m.state
	m.state = domainauth.Snapshot{CurrentUser: user.Clone(), Token: resp.Token}
	next := m.snapshotLocked()
	m.mu.Unlock()

	m.transitioned(ctx, prev, next)
	return domainauth.Result{Success: true, User: next.CurrentUser}
}

// Register creates an account. It never signs the user in.
func (m *SessionManager) Register(ctx context.Context, in domainauth.RegisterInput) (res domainauth.Result) {
	defer m.recoverResult(ctx, "register", MsgRegisterFailed, &res)

	if err := m.validator.Struct(in); err != nil {
		return failure(validationMessage(err))
	}
	if err := m.api.Register(ctx, in); err != nil {
		m.logger.WarnContext(ctx, "register request failed",
			"error_class", obserrors.Classify(err), "code", apperrors.Classify(err))
		if msg := gateway.BackendMessage(err); msg != "" {
			return failure(msg)
		}
		return failure(MsgRegisterFailed)
	}
	return domainauth.Result{Success: true, Message: MsgRegistered}
}

// Logout clears the stored and in-memory session. It is idempotent and never fails;
// a store error is logged and the in-memory state still resets.
func (m *SessionManager) Logout(ctx context.Context) {
	m.Initialize(ctx)
	m.signOut(ctx, "")
}

// signOut clears the session. A non-empty onlyToken limits it to the session
// holding that token, so a stale rejection cannot end a newer login.
func (m *SessionManager) signOut(ctx context.Context, onlyToken string) bool {
	m.mu.Lock()
	if onlyToken != "" && m.state.Token != onlyToken {
		m.mu.Unlock()
		return false
	}
	if err := m.store.ClearSession(context.WithoutCancel(ctx)); err != nil {
		m.logger.WarnContext(ctx, "clear stored session failed",
			"error_class", obserrors.Classify(err), "error", err)
	}
	prev := m.state
	m.state = domainauth.Snapshot{}
	next := m.snapshotLocked()
	m.mu.Unlock()

	m.transitioned(ctx, prev, next)
	return true
}

// ObserveResponse receives the status of every authenticated gateway call.
// With LogoutOnUnauthorized set, a 401 ends the session only while it still
// holds the token that request carried.
func (m *SessionManager) ObserveResponse(status int, token string) {
	if !m.logoutOn401 || token == "" || status != http.StatusUnauthorized {
		return
	}
	if m.signOut(context.Background(), token) {
		m.logger.Info("backend rejected the session token; signed out")
	}
}

// Snapshot returns a consistent copy of the current state.
func (m *SessionManager) Snapshot() domainauth.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *SessionManager) IsAuthenticated() bool { return m.Snapshot().IsAuthenticated() }

func (m *SessionManager) Loading() bool { return m.Snapshot().Loading }

func (m *SessionManager) CurrentUser() *domainauth.UserIdentity { return m.Snapshot().CurrentUser }

func (m *SessionManager) Token() string { return m.Snapshot().Token }

// Subscribe registers fn to receive the snapshot after every committed transition.
// Listeners run outside the state lock and may read the manager; concurrent
// transitions can deliver out of order, so listeners needing the latest state
// should call Snapshot.
func (m *SessionManager) Subscribe(fn func(domainauth.Snapshot)) (unsubscribe func()) {
	m.lmu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.lmu.Lock()
			delete(m.listeners, id)
			m.lmu.Unlock()
		})
	}
}

func (m *SessionManager) snapshotLocked() domainauth.Snapshot {
	return domainauth.Snapshot{
		CurrentUser: m.state.CurrentUser.Clone(),
		Token:       m.state.Token,
		Loading:     m.state.Loading,
	}
}

func (m *SessionManager) transitioned(ctx context.Context, prev, next domainauth.Snapshot) {
	if prev.State() != next.State() {
		attrs := []any{"from", prev.State().String(), "to", next.State().String()}
		if next.CurrentUser != nil {
			attrs = append(attrs, "username", next.CurrentUser.Username)
		}
		m.logger.InfoContext(ctx, "session transition", attrs...)
	}

	m.lmu.Lock()
	fns := make([]func(domainauth.Snapshot), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.lmu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

// recoverResult converts a panic below the manager into a failure result.
func (m *SessionManager) recoverResult(ctx context.Context, op, msg string, res *domainauth.Result) {
	if r := recover(); r != nil {
		m.logger.ErrorContext(ctx, "recovered panic", "op", op, "panic", fmt.Sprint(r))
		*res = failure(msg)
	}
}

func failure(msg string) domainauth.Result {
	return domainauth.Result{Success: false, Message: msg}
}

func validationMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// loginFailureMessage prefers the backend's own explanation and otherwise
// distinguishes a rejected credential from everything else.
func loginFailureMessage(err error) string {
	if msg := gateway.BackendMessage(err); msg != "" {
		return msg
	}
	if apperrors.Classify(err) == apperrors.ErrCodeUnauthorized {
		return MsgInvalidCredentials
	}
	return MsgLoginFailed
}
