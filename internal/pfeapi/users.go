package pfeapi

import (
	"context"
	"net/http"

	"github.com/3issane/PFETRACKCODE212/internal/domain/model"
	"github.com/3issane/PFETRACKCODE212/internal/gateway"
)

// UsersClient covers /user/profile.
type UsersClient struct {
	gw Requester
}

func (c *UsersClient) Profile(ctx context.Context) (model.Profile, error) {
	var out model.Profile
	err := getJSON(ctx, c.gw, "/user/profile", gateway.RequestOptions{}, &out)
	return out, err
}

func (c *UsersClient) UpdateProfile(ctx context.Context, in model.ProfileUpdate) (model.Profile, error) {
	var out model.Profile
	err := sendJSON(ctx, c.gw, http.MethodPut, "/user/profile", in, &out)
	return out, err
}
