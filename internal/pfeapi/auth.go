package pfeapi

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/gateway"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
)

var _ ports.AuthAPI = (*AuthClient)(nil)

// AuthClient calls the public authentication endpoints.
type AuthClient struct {
	gw Requester
}

// Login posts credentials to /auth/login without any stored token.
// A 2xx reply without a JSON body yields an empty response; callers treat a missing token as failure.
func (c *AuthClient) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResponse, error) {
	var out domainauth.LoginResponse
	resp, err := c.gw.PublicRequest(ctx, "/auth/login", gateway.RequestOptions{
		Method: http.MethodPost,
		Body:   creds,
	})
	if err != nil {
		return out, err
	}
	defer resp.Close()
	if !resp.IsJSON() {
		return out, nil
	}
	if err := resp.Decode(&out); err != nil && !errors.Is(err, gateway.ErrEmptyBody) {
		return domainauth.LoginResponse{}, err
	}
	return out, nil
}

// Register creates an account via /auth/register. It does not sign the user in.
func (c *AuthClient) Register(ctx context.Context, in domainauth.RegisterInput) error {
	resp, err := c.gw.PublicRequest(ctx, "/auth/register", gateway.RequestOptions{
		Method: http.MethodPost,
		Body:   in,
	})
	if err != nil {
		return err
	}
	return resp.Close()
}
