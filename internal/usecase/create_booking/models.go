package create_booking

import "time"

// Request is a booking request as received from the client
type Request struct {
	ClientName string
	Phone      string // E.164, e.g. +34600111222
	ServiceID  string
	EmployeeID string
	Start      string // RFC 3339, or local YYYY-MM-DDTHH:MM[:SS] in the operating zone
}

// Response is the created booking
type Response struct {
	ID                      int64
	ClientName              string
	Phone                   string
	ServiceID               string
	ServiceName             string
	DurationMinutes         int
	EmployeeID              string
	Start                   time.Time
	End                     time.Time
	Status                  string
	ExternalCalendarEventID *string // set when the calendar sync succeeded
	CreatedAt               time.Time
}
