//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "net/url"

// EventType classifies schedule entries.
type EventType string

const (
	EventExam         EventType = "exam"
	EventPFE          EventType = "pfe"
	EventMeeting      EventType = "meeting"
	EventDeadline     EventType = "deadline"
	EventPresentation EventType = "presentation"
)

// Event is a schedule entry. Public events are visible to every student.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	EventDate   string    `json:"eventDate"`
	EventTime   string    `json:"eventTime,omitempty"`
	Type        EventType `json:"type,omitempty"`
	Location    string    `json:"location,omitempty"`
	Status      string    `json:"status,omitempty"`
	IsPublic    bool      `json:"isPublic"`
	CreatedBy   string    `json:"createdBy,omitempty"`
}

// EventInput is the payload for creating or updating an event.
type EventInput struct {
	Title       string    `json:"title"                 validate:"required"`
	Description string    `json:"description,omitempty"`
	EventDate   string    `json:"eventDate"             validate:"required,datetime=2006-01-02"`
	EventTime   string    `json:"eventTime,omitempty"`
	Type        EventType `json:"type,omitempty"`
	Location    string    `json:"location,omitempty"`
	IsPublic    bool      `json:"isPublic"`
}

// EventFilter narrows event listings. IncludePublic also selects an anonymous request.
type EventFilter struct {
	Type          string
	Status        string
	StartDate     string
	EndDate       string
	IncludePublic bool
}

// Values encodes the filter as query parameters, skipping empty values.
func (f EventFilter) Values() url.Values {
	v := compactValues(map[string]string{
		"type":      f.Type,
		"status":    f.Status,
		"startDate": f.StartDate,
		"endDate":   f.EndDate,
	})
	if f.IncludePublic {
		v.Set("includePublic", "true")
	}
	return v
}

// EventStats counts the caller's upcoming schedule by category.
type EventStats struct {
	TotalEvents       int64 `json:"totalEvents"`
	UpcomingExams     int64 `json:"upcomingExams"`
	UpcomingPfeEvents int64 `json:"upcomingPfeEvents"`
	UpcomingMeetings  int64 `json:"upcomingMeetings"`
}
