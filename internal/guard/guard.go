package guard

// Package guard decides whether a protected location may be shown for the current session.
// It only reads session state; it never touches the credential store.

import (
	"net/url"
	"strings"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
)

// DefaultLoginPath is the login entry point used when none is configured.
const DefaultLoginPath = "/login"

// RedirectParam carries the originally requested location through the login flow.
const RedirectParam = "redirect_uri"

// Kind enumerates guard outcomes.
type Kind int

const (
	// Suspend means the session is still initializing; show a neutral waiting state.
	Suspend Kind = iota
	// Render means the protected location may be shown.
	Render
	// Redirect means the caller must navigate to Target.
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Suspend:
		return "suspend"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name so JSON output stays readable.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Decision is the outcome of evaluating one navigation attempt.
type Decision struct {
	Kind Kind `json:"kind"`
	// Target is set for Redirect only.
	Target string `json:"target,omitempty"`
	// From is the sanitized location that was requested.
	From string `json:"from"`
	// User is the signed-in principal for Render decisions.
	User *domainauth.UserIdentity `json:"user,omitempty"`
}

// Options configures a Guard.
type Options struct {
	Sessions  ports.SessionReader // required
	LoginPath string              // defaults to DefaultLoginPath
}

// Guard evaluates navigation attempts against the session state.
type Guard struct {
	sessions  ports.SessionReader
	loginPath string
}

// New constructs a Guard. Sessions is required.
func New(opts Options) *Guard {
	if opts.Sessions == nil {
		panic("guard: Sessions is required")
	}
	login := SanitizePath(strings.TrimSpace(opts.LoginPath))
	if login == "/" {
		login = DefaultLoginPath
	}
	return &Guard{sessions: opts.Sessions, loginPath: login}
}

// LoginPath returns the configured login entry point.
func (g *Guard) LoginPath() string { return g.loginPath }

// Evaluate decides what to do with a request for the given location.
// One snapshot is taken per call, so the decision reflects a single consistent state.
func (g *Guard) Evaluate(requested string) Decision {
	from := SanitizePath(requested)
	snap := g.sessions.Snapshot()

	switch snap.State() {
	case domainauth.StateInitializing:
		return Decision{Kind: Suspend, From: from}
	case domainauth.StateAuthenticated:
		return Decision{Kind: Render, From: from, User: snap.CurrentUser}
	default:
		return Decision{Kind: Redirect, From: from, Target: g.LoginURL(from)}
	}
}

// LoginURL builds the login location that returns to from after success.
func (g *Guard) LoginURL(from string) string {
	from = SanitizePath(from)
	if from == "/" || g.isLoginPath(from) {
		return g.loginPath
	}
	return g.loginPath + "?" + RedirectParam + "=" + url.QueryEscape(from)
}

// PostLoginDestination returns where a freshly signed-in user should go.
// The remembered location wins unless it is missing or points back at the login page.
func (g *Guard) PostLoginDestination(from string, user *domainauth.UserIdentity) string {
	from = SanitizePath(from)
	if from == "/" || g.isLoginPath(from) {
		return domainauth.LandingPath(user)
	}
	return from
}

func (g *Guard) isLoginPath(p string) bool {
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return strings.TrimSuffix(u.Path, "/") == strings.TrimSuffix(g.loginPath, "/")
}

// SanitizePath accepts only same-origin relative paths; anything else becomes "/".
func SanitizePath(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "/"
	}
	// Reject protocol-relative and backslash tricks that browsers normalize to a host.
	if strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, `/\`) || strings.ContainsAny(candidate, "\r\n") {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
