package httpx

import (
	"net/http"

	"github.com/3issane/PFETRACKCODE212/internal/ports"
)

type healthResponse struct {
	Status  string `json:"status"`
	Session string `json:"session,omitempty"`
}

// healthHandler returns 200 OK for readiness/liveness checks, with the session
// state machine position when a session reader is available.
func healthHandler(sessions ports.SessionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		if sessions != nil {
			resp.Session = sessions.Snapshot().State().String()
		}
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
