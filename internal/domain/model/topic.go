//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/url"
	"strings"
)

// TopicStatus is the lifecycle of a project topic as reported by the backend.
type TopicStatus string

const (
	TopicStatusAvailable TopicStatus = "Available"
	TopicStatusTaken     TopicStatus = "Taken"
	TopicStatusCompleted TopicStatus = "Completed"
)

// Topic is a final-year-project subject students can apply to.
// Timestamps are kept as the backend's local date-time strings.
type Topic struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Supervisor      string      `json:"supervisor,omitempty"`
	Department      string      `json:"department,omitempty"`
	Type            string      `json:"type,omitempty"`
	Status          TopicStatus `json:"status,omitempty"`
	MaxStudents     int         `json:"maxStudents,omitempty"`
	CurrentStudents int         `json:"currentStudents"`
	CreatedAt       string      `json:"createdAt,omitempty"`
	UpdatedAt       string      `json:"updatedAt,omitempty"`
}

// HasCapacity reports whether another student can still join the topic.
func (t Topic) HasCapacity() bool {
	capacity := t.MaxStudents
	if capacity <= 0 {
		capacity = 1
	}
	return t.CurrentStudents < capacity
}

// TopicInput is the payload for creating or updating a topic.
type TopicInput struct {
	Title       string `json:"title"                 validate:"required"`
	Description string `json:"description,omitempty"`
	Supervisor  string `json:"supervisor,omitempty"`
	Department  string `json:"department,omitempty"`
	Type        string `json:"type,omitempty"`
	MaxStudents int    `json:"maxStudents,omitempty" validate:"omitempty,min=1"`
}

// TopicFilter narrows the topic listing. Empty fields are not sent.
type TopicFilter struct {
	Status     string
	Department string
	Type       string
	Search     string
}

// Values encodes the filter as query parameters, skipping empty values.
func (f TopicFilter) Values() url.Values {
	return compactValues(map[string]string{
		"status":     f.Status,
		"department": f.Department,
		"type":       f.Type,
		"search":     f.Search,
	})
}

// ApplicationStatus tracks a student's application to a topic.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// TopicApplication is a student's request to work on a topic.
type TopicApplication struct {
	ID               int64             `json:"id"`
	Topic            *Topic            `json:"topic,omitempty"`
	Motivation       string            `json:"motivation,omitempty"`
	Status           ApplicationStatus `json:"status,omitempty"`
	AppliedAt        string            `json:"appliedAt,omitempty"`
	ReviewedAt       string            `json:"reviewedAt,omitempty"`
	ReviewerComments string            `json:"reviewerComments,omitempty"`
}

// ApplyRequest is the body of a topic application.
type ApplyRequest struct {
	Motivation string `json:"motivation"`
}

// compactValues drops blank entries so filters only send what the caller set.
func compactValues(in map[string]string) url.Values {
	out := url.Values{}
	for k, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out.Set(k, v)
		}
	}
	return out
}
