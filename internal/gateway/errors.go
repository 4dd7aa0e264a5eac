package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrEmptyBody is returned by Response.Decode when the backend sent no JSON payload.
var ErrEmptyBody = errors.New("response has no JSON body")

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// maxPlainMessage bounds a non-JSON error message.
const maxPlainMessage = 200

// HTTPError is returned for every non-2xx response.
type HTTPError struct {
	StatusCode int
	Status     string
	// Message is the backend-supplied explanation, if any.
	Message string
	Method  string
	Path    string
}

func (e *HTTPError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api %s %s: %d", e.Method, e.Path, e.StatusCode)
	if text := http.StatusText(e.StatusCode); text != "" {
		b.WriteString(" ")
		b.WriteString(text)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// HTTPStatus exposes the status code to classifiers that avoid importing this package.
func (e *HTTPError) HTTPStatus() int { return e.StatusCode }

// StatusCode returns the status of an HTTPError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// BackendMessage returns the backend-supplied message of an HTTPError in err's chain.
func BackendMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ""
}

func newHTTPError(resp *http.Response, method, path string) *HTTPError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    extractMessage(resp.Header.Get("Content-Type"), body),
		Method:     method,
		Path:       path,
	}
}

// extractMessage pulls "message" or "error" out of a JSON error body, or
// returns a short plain-text body as is.
func extractMessage(contentType string, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	if isJSON(contentType) || strings.HasPrefix(trimmed, "{") {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			if m := strings.TrimSpace(payload.Message); m != "" {
				return m
			}
			return strings.TrimSpace(payload.Error)
		}
		return ""
	}
	if strings.HasPrefix(strings.ToLower(contentType), "text/html") {
		return ""
	}
	if !utf8.ValidString(trimmed) {
		return ""
	}
	if len(trimmed) > maxPlainMessage {
		trimmed = trimmed[:maxPlainMessage]
		for !utf8.ValidString(trimmed) {
			trimmed = trimmed[:len(trimmed)-1]
		}
	}
	return trimmed
}
