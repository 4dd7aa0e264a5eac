package gateway

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// Response is a successful backend answer.
// JSON responses are read fully into Data. Anything else is left unread in Raw
// and the caller owns closing it.
type Response struct {
	StatusCode int
	Header     http.Header
	Data       json.RawMessage
	Raw        *http.Response
}

// IsJSON reports whether the payload was parsed as structured data.
func (r *Response) IsJSON() bool { return r != nil && r.Raw == nil }

// Decode unmarshals the JSON payload into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Data) == 0 {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Close releases a raw body. It is a no-op for JSON responses.
func (r *Response) Close() error {
	if r == nil || r.Raw == nil || r.Raw.Body == nil {
		return nil
	}
	return r.Raw.Body.Close()
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
