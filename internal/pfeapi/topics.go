package pfeapi

import (
	"context"
	"net/http"

	"github.com/3issane/PFETRACKCODE212/internal/domain/model"
	"github.com/3issane/PFETRACKCODE212/internal/gateway"
)

// TopicsClient covers /topics.
type TopicsClient struct {
	gw Requester
}

func (c *TopicsClient) List(ctx context.Context, filter model.TopicFilter) ([]model.Topic, error) {
	var out []model.Topic
	err := getJSON(ctx, c.gw, "/topics", gateway.RequestOptions{Query: filter.Values()}, &out)
	return out, err
}

// Available lists topics that still accept applications.
func (c *TopicsClient) Available(ctx context.Context) ([]model.Topic, error) {
	var out []model.Topic
	err := getJSON(ctx, c.gw, "/topics/available", gateway.RequestOptions{}, &out)
	return out, err
}

func (c *TopicsClient) Get(ctx context.Context, id int64) (model.Topic, error) {
	var out model.Topic
	err := getJSON(ctx, c.gw, idPath("/topics", id, ""), gateway.RequestOptions{}, &out)
	return out, err
}

func (c *TopicsClient) Create(ctx context.Context, in model.TopicInput) (model.Topic, error) {
	var out model.Topic
	err := sendJSON(ctx, c.gw, http.MethodPost, "/topics", in, &out)
	return out, err
}

func (c *TopicsClient) Update(ctx context.Context, id int64, in model.TopicInput) (model.Topic, error) {
	var out model.Topic
	err := sendJSON(ctx, c.gw, http.MethodPut, idPath("/topics", id, ""), in, &out)
	return out, err
}

func (c *TopicsClient) Delete(ctx context.Context, id int64) error {
	return del(ctx, c.gw, idPath("/topics", id, ""))
}

// Apply submits the caller's application with a motivation letter.
func (c *TopicsClient) Apply(ctx context.Context, id int64, motivation string) (model.TopicApplication, error) {
	var out model.TopicApplication
	err := sendJSON(ctx, c.gw, http.MethodPost, idPath("/topics", id, "/apply"), model.ApplyRequest{Motivation: motivation}, &out)
	return out, err
}

// MyApplications lists the caller's applications.
func (c *TopicsClient) MyApplications(ctx context.Context) ([]model.TopicApplication, error) {
	var out []model.TopicApplication
	err := getJSON(ctx, c.gw, "/topics/my-applications", gateway.RequestOptions{}, &out)
	return out, err
}
