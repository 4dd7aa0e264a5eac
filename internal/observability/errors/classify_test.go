package errors

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusErr int

func (s statusErr) Error() string   { return "status" }
func (s statusErr) HTTPStatus() int { return int(s) }

func TestClassify(t *testing.T) {
	assert.Empty(t, Classify(nil))
	assert.Equal(t, "http_401", Classify(fmt.Errorf("login: %w", statusErr(401))))
	assert.Equal(t, "context_canceled", Classify(fmt.Errorf("do: %w", context.Canceled)))
	assert.Equal(t, "context_deadline_exceeded", Classify(context.DeadlineExceeded))
	assert.Equal(t, "url_error", Classify(&url.Error{Op: "Get", URL: "x", Err: nil}))
}
