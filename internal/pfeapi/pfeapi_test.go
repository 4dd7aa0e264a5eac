package pfeapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/domain/model"
	"github.com/3issane/PFETRACKCODE212/internal/gateway"
	"github.com/3issane/PFETRACKCODE212/internal/testutil"
)

func newAPI(t *testing.T, token string) (*API, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend(t)
	gw, err := gateway.New(gateway.Options{
		BaseURL: backend.BaseURL(),
		Tokens: gateway.TokenFunc(func(context.Context) (string, error) {
			return token, nil
		}),
	})
	require.NoError(t, err)
	return New(gw), backend
}

func TestAuthClient_LoginSuccess(t *testing.T) {
	api, backend := newAPI(t, "stale")
	backend.AddUser("p", testutil.StudentUser())

	resp, err := api.Auth.Login(context.Background(), domainauth.Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "T", resp.Token)
	assert.Equal(t, "u", resp.Username)
	assert.Equal(t, []domainauth.Role{domainauth.RoleStudent}, resp.Roles)

	assert.Equal(t, []string{""}, backend.AuthHeaders(), "login must not carry a stored token")
}

func TestAuthClient_LoginRejected(t *testing.T) {
	api, _ := newAPI(t, "")

	_, err := api.Auth.Login(context.Background(), domainauth.Credentials{Username: "u", Password: "wrong"})
	require.Error(t, err)
	status, ok := gateway.StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthClient_LoginWithoutToken(t *testing.T) {
	api, backend := newAPI(t, "")
	backend.Token = ""
	backend.AddUser("p", testutil.StudentUser())

	resp, err := api.Auth.Login(context.Background(), domainauth.Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Empty(t, resp.Token)
}

func TestAuthClient_Register(t *testing.T) {
	api, backend := newAPI(t, "")
	in := domainauth.RegisterInput{FirstName: "A", LastName: "B", Username: "new", Email: "a@b.c", Password: "secret"}

	require.NoError(t, api.Auth.Register(context.Background(), in))
	assert.Equal(t, 1, backend.RegisterCalls())

	err := api.Auth.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "Error: Username is already taken!", gateway.BackendMessage(err))
}

func TestTopicsClient_ListSendsFilterAndToken(t *testing.T) {
	api, backend := newAPI(t, "T")
	var gotQuery string
	backend.Handle("GET /topics", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		testutil.WriteJSON(w, http.StatusOK, []model.Topic{{ID: 1, Title: "Compilers", Status: model.TopicStatusAvailable}})
	})

	topics, err := api.Topics.List(context.Background(), model.TopicFilter{Department: "CS"})
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "Compilers", topics[0].Title)
	assert.Equal(t, "department=CS", gotQuery)
	assert.Equal(t, []string{"Bearer T"}, backend.AuthHeaders())
}

func TestTopicsClient_Apply(t *testing.T) {
	api, backend := newAPI(t, "T")
	backend.Handle("POST /topics/{id}/apply", func(w http.ResponseWriter, r *http.Request) {
		var body model.ApplyRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "42", r.PathValue("id"))
		testutil.WriteJSON(w, http.StatusOK, model.TopicApplication{ID: 9, Motivation: body.Motivation, Status: model.ApplicationPending})
	})

	app, err := api.Topics.Apply(context.Background(), 42, "I like it")
	require.NoError(t, err)
	assert.Equal(t, int64(9), app.ID)
	assert.Equal(t, "I like it", app.Motivation)
}

func TestReportsClient_UploadMultipart(t *testing.T) {
	api, backend := newAPI(t, "T")
	backend.Handle("POST /reports/{id}/upload", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		testutil.WriteJSON(w, http.StatusOK, model.Report{ID: 3, FileName: hdr.Filename, FileSize: int64(len(data))})
	})

	rep, err := api.Reports.Upload(context.Background(), 3, "/tmp/final.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "final.pdf", rep.FileName)
	assert.Equal(t, int64(4), rep.FileSize)
}

func TestReportsClient_CreateWithFileSendsFields(t *testing.T) {
	api, backend := newAPI(t, "T")
	backend.Handle("POST /reports/upload", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		testutil.WriteJSON(w, http.StatusOK, model.Report{ID: 5, Title: r.FormValue("title"), Type: r.FormValue("type")})
	})

	rep, err := api.Reports.CreateWithFile(context.Background(), model.ReportInput{Title: "Final", Type: "Thesis"}, "a.pdf", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "Final", rep.Title)
	assert.Equal(t, "Thesis", rep.Type)
}

func TestReportsClient_Download(t *testing.T) {
	api, backend := newAPI(t, "T")
	backend.Handle("GET /reports/{id}/download", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.7"))
	})

	body, name, err := api.Reports.Download(context.Background(), 1)
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", name)
	assert.Equal(t, "%PDF-1.7", string(data))
}

func TestEventsClient_PublicListIsAnonymous(t *testing.T) {
	api, backend := newAPI(t, "T")
	backend.Handle("GET /events", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, []model.Event{{ID: 1, Title: "Defense", IsPublic: true}})
	})

	_, err := api.Events.List(context.Background(), model.EventFilter{IncludePublic: true})
	require.NoError(t, err)
	_, err = api.Events.List(context.Background(), model.EventFilter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer T"}, backend.AuthHeaders())
}

func TestEventsClient_UpcomingDefaultLimit(t *testing.T) {
	api, backend := newAPI(t, "T")
	var limit string
	backend.Handle("GET /events/upcoming", func(w http.ResponseWriter, r *http.Request) {
		limit = r.URL.Query().Get("limit")
		testutil.WriteJSON(w, http.StatusOK, []model.Event{})
	})

	_, err := api.Events.Upcoming(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "10", limit)
}

func TestGradesClient_ListBySemester(t *testing.T) {
	api, backend := newAPI(t, "T")
	backend.Handle("GET /grades", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, []model.Grade{{ID: 1, SubjectName: "Math", Semester: r.URL.Query().Get("semester")}})
	})

	grades, err := api.Grades.List(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, "S1", grades[0].Semester)
}

func TestUsersClient_UpdateProfile(t *testing.T) {
	api, backend := newAPI(t, "T")
	backend.Handle("PUT /user/profile", func(w http.ResponseWriter, r *http.Request) {
		var in model.ProfileUpdate
		_ = json.NewDecoder(r.Body).Decode(&in)
		testutil.WriteJSON(w, http.StatusOK, model.Profile{FirstName: in.FirstName, Email: in.Email})
	})

	p, err := api.Users.UpdateProfile(context.Background(), model.ProfileUpdate{FirstName: "A", LastName: "B", Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "A", p.FirstName)
}

func TestDecode_RejectsNonJSON(t *testing.T) {
	api, backend := newAPI(t, "T")
	backend.Handle("GET /grades/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	})

	_, err := api.Grades.Stats(context.Background())
	require.Error(t, err)
}
