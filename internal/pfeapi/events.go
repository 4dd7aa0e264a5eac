package pfeapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/3issane/PFETRACKCODE212/internal/domain/model"
	"github.com/3issane/PFETRACKCODE212/internal/gateway"
)

// DefaultUpcomingLimit is the page size used when Upcoming is called with limit <= 0.
const DefaultUpcomingLimit = 10

// EventsClient covers /events.
type EventsClient struct {
	gw Requester
}

// List returns schedule entries. When IncludePublic is set the call is made
// without credentials so anonymous visitors can read the public calendar.
func (c *EventsClient) List(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	opts := gateway.RequestOptions{Query: filter.Values()}
	var out []model.Event
	if !filter.IncludePublic {
		err := getJSON(ctx, c.gw, "/events", opts, &out)
		return out, err
	}
	resp, err := c.gw.PublicRequest(ctx, "/events", opts)
	if err != nil {
		return nil, err
	}
	return out, decode(resp, "/events", &out)
}

func (c *EventsClient) Upcoming(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	var out []model.Event
	err := getJSON(ctx, c.gw, "/events/upcoming", gateway.RequestOptions{
		Query: url.Values{"limit": {strconv.Itoa(limit)}},
	}, &out)
	return out, err
}

// ByDate returns the entries of one day (YYYY-MM-DD).
func (c *EventsClient) ByDate(ctx context.Context, date string) ([]model.Event, error) {
	var out []model.Event
	err := getJSON(ctx, c.gw, "/events/date/"+url.PathEscape(date), gateway.RequestOptions{}, &out)
	return out, err
}

func (c *EventsClient) Get(ctx context.Context, id int64) (model.Event, error) {
	var out model.Event
	err := getJSON(ctx, c.gw, idPath("/events", id, ""), gateway.RequestOptions{}, &out)
	return out, err
}

func (c *EventsClient) Create(ctx context.Context, in model.EventInput) (model.Event, error) {
	var out model.Event
	err := sendJSON(ctx, c.gw, http.MethodPost, "/events", in, &out)
	return out, err
}

func (c *EventsClient) Update(ctx context.Context, id int64, in model.EventInput) (model.Event, error) {
	var out model.Event
	err := sendJSON(ctx, c.gw, http.MethodPut, idPath("/events", id, ""), in, &out)
	return out, err
}

func (c *EventsClient) Delete(ctx context.Context, id int64) error {
	return del(ctx, c.gw, idPath("/events", id, ""))
}

func (c *EventsClient) Stats(ctx context.Context) (model.EventStats, error) {
	var out model.EventStats
	err := getJSON(ctx, c.gw, "/events/stats", gateway.RequestOptions{}, &out)
	return out, err
}
