package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/3issane/PFETRACKCODE212/config"
	"github.com/3issane/PFETRACKCODE212/internal/bootstrap"
	"github.com/3issane/PFETRACKCODE212/internal/domain/model"
	"github.com/3issane/PFETRACKCODE212/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliFixture struct {
	backend *testutil.Backend
	cfg     config.AppConfig
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	backend := testutil.NewBackend(t)
	backend.AddUser("p", testutil.StudentUser())
	return &cliFixture{
		backend: backend,
		cfg: config.AppConfig{
			API:     config.APIConfig{BaseURL: backend.BaseURL(), Timeout: 5 * time.Second, RateBurst: 1},
			Store:   config.StoreConfig{Backend: config.StoreFile, Path: filepath.Join(t.TempDir(), "credentials.json")},
			Session: config.SessionConfig{LoginPath: "/login"},
		},
	}
}

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// run executes one CLI invocation with a fresh container, as a new process would.
func (f *cliFixture) run(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := bootstrap.NewContainer(bootstrap.ContainerDeps{Config: &f.cfg, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	var stdout, stderr bytes.Buffer
	cmdCtx := &commandContext{
		Ctx:       context.Background(),
		Logger:    logger,
		Config:    f.cfg,
		Container: c,
		Stdin:     strings.NewReader(stdin),
		Stdout:    &stdout,
		Stderr:    &stderr,
		ReadPassword: func() ([]byte, error) {
			return nil, errors.New("no terminal in tests")
		},
	}
	cmd, ok := commands()[args[0]]
	require.True(t, ok, "unknown command %s", args[0])
	code := execute(cmdCtx, cmd, args[1:])
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestLogin_PersistsAcrossInvocations(t *testing.T) {
	f := newCLIFixture(t)

	res := f.run(t, "p\n", "login", "-u", "u", "--password-stdin")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "/dashboard/student\n", res.stdout)
	assert.Contains(t, res.stderr, "Signed in as A B")

	res = f.run(t, "", "whoami", "--query", "currentUser.username")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "\"u\"\n", res.stdout)

	res = f.run(t, "", "open", "/dashboard/student")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"kind": "render"`)
	assert.Equal(t, 1, f.backend.LoginCalls(), "restoring a session makes no network call")
}

func TestLogin_PromptsForUsername(t *testing.T) {
	f := newCLIFixture(t)

	res := f.run(t, "u\n", "login")
	// The username comes from stdin; the password prompt has no terminal.
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Username: ")
	assert.Contains(t, res.stderr, "no terminal in tests")
	assert.Zero(t, f.backend.LoginCalls())
}

func TestLogin_Failure(t *testing.T) {
	f := newCLIFixture(t)

	res := f.run(t, "wrong\n", "login", "-u", "u", "--password-stdin")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Invalid username or password")
	assert.Empty(t, res.stdout)

	res = f.run(t, "", "open", "/dashboard/student")
	assert.Contains(t, res.stdout, `"kind": "redirect"`)
	assert.Contains(t, res.stdout, `"target": "/login?redirect_uri=%2Fdashboard%2Fstudent"`)
}

func TestLogin_PasswordStdinNeedsUsername(t *testing.T) {
	f := newCLIFixture(t)
	res := f.run(t, "p\n", "login", "--password-stdin")
	assert.Equal(t, 2, res.code)
}

func TestLogout(t *testing.T) {
	f := newCLIFixture(t)
	require.Equal(t, 0, f.run(t, "p\n", "login", "-u", "u", "--password-stdin").code)

	res := f.run(t, "", "logout")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "Signed out\n", res.stdout)

	res = f.run(t, "", "whoami", "--query", "state")
	assert.Equal(t, "\"unauthenticated\"\n", res.stdout)
}

func TestRegister(t *testing.T) {
	f := newCLIFixture(t)

	res := f.run(t, "secret1\n", "register",
		"--first-name", "N", "--last-name", "M", "--username", "new", "--email", "n@x.io", "--password-stdin")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Registration successful")

	res = f.run(t, "", "whoami", "--query", "isAuthenticated")
	assert.Equal(t, "false\n", res.stdout, "registration never signs in")
}

func TestAPI_QueryAndToken(t *testing.T) {
	f := newCLIFixture(t)
	f.backend.Handle("GET /topics", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OPEN", r.URL.Query().Get("status"))
		testutil.WriteJSON(w, http.StatusOK, []model.Topic{{ID: 1, Title: "Compilers"}, {ID: 2, Title: "Networks"}})
	})
	require.Equal(t, 0, f.run(t, "p\n", "login", "-u", "u", "--password-stdin").code)

	res := f.run(t, "", "api", "get", "/topics?status=OPEN", "--query", "[].title")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `["Compilers","Networks"]`, res.stdout)
	headers := f.backend.AuthHeaders()
	assert.Equal(t, "Bearer T", headers[len(headers)-1])
}

func TestAPI_Validation(t *testing.T) {
	f := newCLIFixture(t)

	assert.Equal(t, 2, f.run(t, "", "api", "GET").code)
	assert.Equal(t, 2, f.run(t, "", "api", "POST", "/topics", "--data", "{nope").code)
	assert.Equal(t, 2, f.run(t, "", "api", "GET", "https://evil.example/x").code)
}

func TestAPI_BackendErrorExitsNonZero(t *testing.T) {
	f := newCLIFixture(t)
	f.backend.Handle("GET /reports/9", func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteJSON(w, http.StatusNotFound, map[string]string{"message": "Report not found"})
	})

	res := f.run(t, "", "reports", "get", "9")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Report not found")
}

func TestTopicsAvailable(t *testing.T) {
	f := newCLIFixture(t)
	f.backend.Handle("GET /topics/available", func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, []model.Topic{{ID: 7, Title: "Compilers"}})
	})

	res := f.run(t, "", "topics", "available", "--query", "[0].id")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "7\n", res.stdout)
}

func TestFeatureCommands_Usage(t *testing.T) {
	f := newCLIFixture(t)

	assert.Equal(t, 2, f.run(t, "", "topics", "bogus").code)
	assert.Equal(t, 2, f.run(t, "", "topics", "get").code)
	assert.Equal(t, 2, f.run(t, "", "reports", "get", "abc").code)
	assert.Equal(t, 2, f.run(t, "", "events", "date").code)
	assert.Equal(t, 2, f.run(t, "", "open").code)
	assert.Equal(t, 0, f.run(t, "", "grades", "--help").code)
}

func TestDashboard_RequiresSession(t *testing.T) {
	f := newCLIFixture(t)
	res := f.run(t, "", "dashboard")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "sign in required")
}

func TestReportsDownload(t *testing.T) {
	f := newCLIFixture(t)
	f.backend.Handle("GET /reports/3/download", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="final.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	out := filepath.Join(t.TempDir(), "out.pdf")
	res := f.run(t, "", "reports", "download", "3", "-o", out)
	require.Equal(t, 0, res.code, res.stderr)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestPrintUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))
	for name := range commands() {
		assert.Contains(t, buf.String(), name)
	}
}
