package ports

// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters and internal/pfeapi; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
)

// TokenReader is the read-only view of the credential store used by the API gateway.
type TokenReader interface {
	// ReadToken returns the stored token, or "" when none is stored.
	ReadToken(ctx context.Context) (string, error)
}

// CredentialStore durably persists the session token and the user record.
// Absence is a normal result: ("", nil) and (nil, nil). Errors are reserved for backend I/O failures.
type CredentialStore interface {
	TokenReader

	// ReadUser returns the stored identity, or nil when absent or unparseable.
	ReadUser(ctx context.Context) (*domainauth.UserIdentity, error)

	// WriteSession persists both slots as a single unit from the reader's perspective.
	WriteSession(ctx context.Context, token string, user domainauth.UserIdentity) error

	// ClearSession removes both slots. Clearing an empty store is not an error.
	ClearSession(ctx context.Context) error
}

// AuthAPI is the backend surface the session manager authenticates against.
type AuthAPI interface {
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResponse, error)
	Register(ctx context.Context, in domainauth.RegisterInput) error
}

// SessionReader exposes session state to read-only observers such as the route guard.
type SessionReader interface {
	Snapshot() domainauth.Snapshot
}

// ResponseObserver is told about every completed authenticated request.
// It must not block; the gateway returns the response regardless of what the observer does.
type ResponseObserver interface {
	// ObserveResponse receives the status and the token the request carried ("" when it went out anonymous).
	ObserveResponse(status int, token string)
}
