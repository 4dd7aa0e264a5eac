package pfeapi

// Package pfeapi wraps the PFETrack backend endpoints on top of the API gateway.
// Every call is authenticated unless its doc says otherwise.

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/3issane/PFETRACKCODE212/internal/gateway"
)

// Requester is the gateway surface the endpoint clients need.
type Requester interface {
	Request(ctx context.Context, path string, opts gateway.RequestOptions) (*gateway.Response, error)
	PublicRequest(ctx context.Context, path string, opts gateway.RequestOptions) (*gateway.Response, error)
}

// API groups the endpoint clients.
type API struct {
	Auth    *AuthClient
	Topics  *TopicsClient
	Reports *ReportsClient
	Grades  *GradesClient
	Events  *EventsClient
	Users   *UsersClient
}

// New builds every endpoint client on top of one gateway.
func New(gw Requester) *API {
	return &API{
		Auth:    &AuthClient{gw: gw},
		Topics:  &TopicsClient{gw: gw},
		Reports: &ReportsClient{gw: gw},
		Grades:  &GradesClient{gw: gw},
		Events:  &EventsClient{gw: gw},
		Users:   &UsersClient{gw: gw},
	}
}

// getJSON performs an authenticated GET and decodes the payload into out.
func getJSON(ctx context.Context, gw Requester, path string, opts gateway.RequestOptions, out any) error {
	resp, err := gw.Request(ctx, path, opts)
	if err != nil {
		return err
	}
	return decode(resp, path, out)
}

// sendJSON performs an authenticated call with a JSON body and decodes the reply when out is non-nil.
func sendJSON(ctx context.Context, gw Requester, method, path string, body, out any) error {
	resp, err := gw.Request(ctx, path, gateway.RequestOptions{Method: method, Body: body})
	if err != nil {
		return err
	}
	if out == nil {
		return resp.Close()
	}
	return decode(resp, path, out)
}

func del(ctx context.Context, gw Requester, path string) error {
	return sendJSON(ctx, gw, http.MethodDelete, path, nil, nil)
}

func decode(resp *gateway.Response, path string, out any) error {
	defer resp.Close()
	if !resp.IsJSON() {
		return fmt.Errorf("%s: expected JSON, got %q", path, resp.Header.Get("Content-Type"))
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func idPath(prefix string, id int64, suffix string) string {
	return prefix + "/" + strconv.FormatInt(id, 10) + suffix
}
