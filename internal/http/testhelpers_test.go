package httpx

import (
	"context"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/guard"
)

// stubSessions is a scripted SessionService.
type stubSessions struct {
	snap        domainauth.Snapshot
	loginFunc   func(username, password string) domainauth.Result
	registerIn  *domainauth.RegisterInput
	registerRes domainauth.Result
	logouts     int
}

func (s *stubSessions) Snapshot() domainauth.Snapshot { return s.snap }

func (s *stubSessions) Login(_ context.Context, username, password string) domainauth.Result {
	if s.loginFunc == nil {
		return domainauth.Result{Message: "Invalid username or password"}
	}
	res := s.loginFunc(username, password)
	if res.Success {
		s.snap = domainauth.Snapshot{CurrentUser: res.User, Token: "T"}
	}
	return res
}

func (s *stubSessions) Register(_ context.Context, in domainauth.RegisterInput) domainauth.Result {
	s.registerIn = &in
	return s.registerRes
}

func (s *stubSessions) Logout(context.Context) {
	s.logouts++
	s.snap = domainauth.Snapshot{}
}

func studentUser() *domainauth.UserIdentity {
	return &domainauth.UserIdentity{ID: 1, FirstName: "A", LastName: "B", Username: "u", Email: "e", Roles: []domainauth.Role{domainauth.RoleStudent}}
}

func adminUser() *domainauth.UserIdentity {
	return &domainauth.UserIdentity{ID: 2, Username: "admin", Roles: []domainauth.Role{domainauth.RoleAdmin}}
}

func signedIn(u *domainauth.UserIdentity) *stubSessions {
	return &stubSessions{snap: domainauth.Snapshot{CurrentUser: u, Token: "T"}}
}

func newGuard(s *stubSessions) *guard.Guard {
	return guard.New(guard.Options{Sessions: s})
}
