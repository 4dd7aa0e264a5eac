package auth

// Package auth contains domain-level types for the client session.
// It is pure and free of framework/adapter concerns.

import "strings"

// Role is an authorization label issued by the backend.
// Keep the backend's string form so stored records round-trip unchanged.
type Role string

const (
	RoleStudent Role = "ROLE_STUDENT"
	RoleAdmin   Role = "ROLE_ADMIN"
)

// Landing paths for signed-in principals.
const (
	StudentLandingPath = "/dashboard/student"
	AdminLandingPath   = "/dashboard/admin"
	DefaultLandingPath = "/"
)

// UserIdentity is the cached profile of the signed-in principal.
// Field names match the backend's login response and the persisted "user" slot.
type UserIdentity struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Roles     []Role `json:"roles"`
}

// Valid reports whether the record is structurally usable as a session identity.
func (u *UserIdentity) Valid() bool {
	return u != nil && strings.TrimSpace(u.Username) != ""
}

// HasRole reports whether the identity carries the given role label.
func (u *UserIdentity) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// FullName joins first and last name, falling back to the username.
func (u *UserIdentity) FullName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Clone returns a deep copy so callers cannot mutate manager-owned state.
func (u *UserIdentity) Clone() *UserIdentity {
	if u == nil {
		return nil
	}
	c := *u
	if u.Roles != nil {
		c.Roles = append([]Role(nil), u.Roles...)
	}
	return &c
}

// LandingPath returns the dashboard a principal should land on after login.
// Admin wins over student when both roles are present.
func LandingPath(u *UserIdentity) string {
	switch {
	case u.HasRole(RoleAdmin):
		return AdminLandingPath
	case u.HasRole(RoleStudent):
		return StudentLandingPath
	default:
		return DefaultLandingPath
	}
}

// State is the session state machine position.
type State int

const (
	StateInitializing State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent, read-only copy of the session state.
type Snapshot struct {
	CurrentUser *UserIdentity `json:"currentUser"`
	Token       string        `json:"-"`
	Loading     bool          `json:"loading"`
}

// IsAuthenticated is derived from the presence of a user identity.
func (s Snapshot) IsAuthenticated() bool { return s.CurrentUser != nil }

// State maps the snapshot onto the state machine.
func (s Snapshot) State() State {
	switch {
	case s.Loading:
		return StateInitializing
	case s.IsAuthenticated():
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}

// Result is the typed outcome of login and register.
type Result struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	User    *UserIdentity `json:"user,omitempty"`
}

// Credentials are the inputs of a login attempt.
type Credentials struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName"  validate:"notblank"`
	Username  string `json:"username"  validate:"notblank"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
}

// LoginResponse is the backend payload returned by a successful login call.
// A missing Token means the attempt failed even when the HTTP status was 2xx.
type LoginResponse struct {
	Token     string `json:"token"`
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Roles     []Role `json:"roles"`
}

// Identity extracts the user record carried by the login response.
func (r LoginResponse) Identity() UserIdentity {
	return UserIdentity{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Username:  r.Username,
		Email:     r.Email,
		Roles:     append([]Role(nil), r.Roles...),
	}
}
