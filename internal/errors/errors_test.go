package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "resource not found",
			},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to process",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to process: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	if !errors.Is(err, cause) {
		t.Errorf("Wrap() lost the cause")
	}
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Errorf("Wrap(nil) should be nil")
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("password", "password must be at least 6 characters")
	if !IsValidation(err) {
		t.Errorf("IsValidation() = false")
	}
	if got := GetField(fmt.Errorf("ctx: %w", err)); got != "password" {
		t.Errorf("GetField() = %q, want password", got)
	}
}

type statusErr int

func (s statusErr) Error() string   { return http.StatusText(int(s)) }
func (s statusErr) HTTPStatus() int { return int(s) }

type timeoutErr struct{ timeout bool }

func (e timeoutErr) Error() string   { return "net" }
func (e timeoutErr) Timeout() bool   { return e.timeout }
func (e timeoutErr) Temporary() bool { return false }

var _ net.Error = timeoutErr{}

func TestClassify(t *testing.T) {
	var syntax *json.SyntaxError
	syntaxErr := json.Unmarshal([]byte("{bad"), &map[string]any{})
	if !errors.As(syntaxErr, &syntax) {
		t.Fatalf("expected a json syntax error, got %T", syntaxErr)
	}

	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"app error keeps code", Validation("bad"), ErrCodeValidation},
		{"401", statusErr(http.StatusUnauthorized), ErrCodeUnauthorized},
		{"403 wrapped", fmt.Errorf("call: %w", statusErr(http.StatusForbidden)), ErrCodeUnauthorized},
		{"404", statusErr(http.StatusNotFound), ErrCodeNotFound},
		{"400", statusErr(http.StatusBadRequest), ErrCodeRejected},
		{"502", statusErr(http.StatusBadGateway), ErrCodeInternal},
		{"canceled", context.Canceled, ErrCodeCanceled},
		{"deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"net timeout", timeoutErr{timeout: true}, ErrCodeTimeout},
		{"net refused", timeoutErr{}, ErrCodeNetwork},
		{"malformed json", syntaxErr, ErrCodeInternal},
		{"unknown", errors.New("boom"), ErrCodeNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	if got := HTTPStatus(ErrCodeUnauthorized); got != http.StatusUnauthorized {
		t.Errorf("HTTPStatus(unauthorized) = %d", got)
	}
	if got := HTTPStatus("other"); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(other) = %d", got)
	}
}
