//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "net/url"

// ReportStatus is the review state of a submitted document.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "Draft"
	ReportSubmitted ReportStatus = "Submitted"
	ReportReviewed  ReportStatus = "Reviewed"
	ReportApproved  ReportStatus = "Approved"
	ReportRejected  ReportStatus = "Rejected"
)

// Report is a student deliverable, optionally backed by an uploaded file.
type Report struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        string       `json:"type,omitempty"`
	Status      ReportStatus `json:"status,omitempty"`
	FileName    string       `json:"fileName,omitempty"`
	FileSize    int64        `json:"fileSize,omitempty"`
	Feedback    string       `json:"feedback,omitempty"`
	Grade       *float64     `json:"grade,omitempty"`
	SubmittedAt string       `json:"submittedAt,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"`
	UpdatedAt   string       `json:"updatedAt,omitempty"`
}

// Editable reports whether the backend still accepts changes to the report.
// Only drafts can be updated, submitted or deleted.
func (r Report) Editable() bool { return r.Status == "" || r.Status == ReportDraft }

// ReportInput is the payload for creating or updating a report.
type ReportInput struct {
	Title       string `json:"title"                 validate:"required"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// ReportFilter narrows report listings. Empty fields are not sent.
type ReportFilter struct {
	Status string
	Type   string
}

// Values encodes the filter as query parameters, skipping empty values.
func (f ReportFilter) Values() url.Values {
	return compactValues(map[string]string{
		"status": f.Status,
		"type":   f.Type,
	})
}
