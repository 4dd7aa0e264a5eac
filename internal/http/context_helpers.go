package httpx

import (
	"context"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
)

// userKey is an unexported context key type to avoid collisions across packages.
type userKey struct{}

// SetUserInContext returns a child context that carries the signed-in user.
// If user is nil, the original ctx is returned unchanged.
func SetUserInContext(ctx context.Context, user *domainauth.UserIdentity) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the signed-in user and a boolean indicating presence.
func UserFromContext(ctx context.Context) (*domainauth.UserIdentity, bool) {
	if u, ok := ctx.Value(userKey{}).(*domainauth.UserIdentity); ok && u != nil {
		return u, true
	}
	return nil, false
}
