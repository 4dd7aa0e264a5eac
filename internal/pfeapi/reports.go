package pfeapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/3issane/PFETRACKCODE212/internal/domain/model"
	"github.com/3issane/PFETRACKCODE212/internal/gateway"
)

// ReportsClient covers /reports, including file upload and download.
type ReportsClient struct {
	gw Requester
}

// Mine lists the caller's reports.
func (c *ReportsClient) Mine(ctx context.Context, filter model.ReportFilter) ([]model.Report, error) {
	var out []model.Report
	err := getJSON(ctx, c.gw, "/reports", gateway.RequestOptions{Query: filter.Values()}, &out)
	return out, err
}

// All lists every student's reports (admin).
func (c *ReportsClient) All(ctx context.Context, filter model.ReportFilter) ([]model.Report, error) {
	var out []model.Report
	err := getJSON(ctx, c.gw, "/reports/all", gateway.RequestOptions{Query: filter.Values()}, &out)
	return out, err
}

func (c *ReportsClient) Get(ctx context.Context, id int64) (model.Report, error) {
	var out model.Report
	err := getJSON(ctx, c.gw, idPath("/reports", id, ""), gateway.RequestOptions{}, &out)
	return out, err
}

func (c *ReportsClient) Create(ctx context.Context, in model.ReportInput) (model.Report, error) {
	var out model.Report
	err := sendJSON(ctx, c.gw, http.MethodPost, "/reports", in, &out)
	return out, err
}

func (c *ReportsClient) Update(ctx context.Context, id int64, in model.ReportInput) (model.Report, error) {
	var out model.Report
	err := sendJSON(ctx, c.gw, http.MethodPut, idPath("/reports", id, ""), in, &out)
	return out, err
}

func (c *ReportsClient) Delete(ctx context.Context, id int64) error {
	return del(ctx, c.gw, idPath("/reports", id, ""))
}

// Submit moves a draft to review.
func (c *ReportsClient) Submit(ctx context.Context, id int64) (model.Report, error) {
	var out model.Report
	err := sendJSON(ctx, c.gw, http.MethodPost, idPath("/reports", id, "/submit"), nil, &out)
	return out, err
}

// Upload attaches a file to an existing report.
func (c *ReportsClient) Upload(ctx context.Context, id int64, filename string, file io.Reader) (model.Report, error) {
	body, contentType, err := multipartBody(nil, filename, file)
	if err != nil {
		return model.Report{}, err
	}
	return c.postMultipart(ctx, idPath("/reports", id, "/upload"), body, contentType)
}

// CreateWithFile creates a draft report and its file in one call.
func (c *ReportsClient) CreateWithFile(ctx context.Context, in model.ReportInput, filename string, file io.Reader) (model.Report, error) {
	fields := map[string]string{
		"title":       in.Title,
		"type":        in.Type,
		"description": in.Description,
	}
	body, contentType, err := multipartBody(fields, filename, file)
	if err != nil {
		return model.Report{}, err
	}
	return c.postMultipart(ctx, "/reports/upload", body, contentType)
}

// Download streams the report file. The caller closes the returned reader.
func (c *ReportsClient) Download(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	resp, err := c.gw.Request(ctx, idPath("/reports", id, "/download"), gateway.RequestOptions{
		Header: http.Header{"Accept": []string{"*/*"}},
	})
	if err != nil {
		return nil, "", err
	}
	name := attachmentName(resp.Header.Get("Content-Disposition"))
	if resp.IsJSON() {
		return io.NopCloser(bytes.NewReader(resp.Data)), name, nil
	}
	return resp.Raw.Body, name, nil
}

func (c *ReportsClient) postMultipart(ctx context.Context, path string, body io.Reader, contentType string) (model.Report, error) {
	var out model.Report
	resp, err := c.gw.Request(ctx, path, gateway.RequestOptions{
		Method:      http.MethodPost,
		RawBody:     body,
		ContentType: contentType,
	})
	if err != nil {
		return out, err
	}
	return out, decode(resp, path, &out)
}

// multipartBody builds a form with optional text fields and a "file" part.
func multipartBody(fields map[string]string, filename string, file io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}
	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return filepath.Base(params["filename"])
}
