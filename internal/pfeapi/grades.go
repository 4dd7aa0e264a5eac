package pfeapi

import (
	"context"
	"net/url"

	"github.com/3issane/PFETRACKCODE212/internal/domain/model"
	"github.com/3issane/PFETRACKCODE212/internal/gateway"
)

// GradesClient covers /grades.
type GradesClient struct {
	gw Requester
}

// List returns the caller's grades, optionally for one semester.
func (c *GradesClient) List(ctx context.Context, semester string) ([]model.Grade, error) {
	var opts gateway.RequestOptions
	if semester != "" {
		opts.Query = url.Values{"semester": {semester}}
	}
	var out []model.Grade
	err := getJSON(ctx, c.gw, "/grades", opts, &out)
	return out, err
}

func (c *GradesClient) Stats(ctx context.Context) (model.GradeStats, error) {
	var out model.GradeStats
	err := getJSON(ctx, c.gw, "/grades/stats", gateway.RequestOptions{}, &out)
	return out, err
}

func (c *GradesClient) Transcript(ctx context.Context) (model.Transcript, error) {
	var out model.Transcript
	err := getJSON(ctx, c.gw, "/grades/transcript", gateway.RequestOptions{}, &out)
	return out, err
}

func (c *GradesClient) UpcomingEvaluations(ctx context.Context) ([]model.Evaluation, error) {
	var out []model.Evaluation
	err := getJSON(ctx, c.gw, "/grades/evaluations/upcoming", gateway.RequestOptions{}, &out)
	return out, err
}
