package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values
func (s BookingStatus) IsValid() bool {
	return s == StatusActive || s == StatusCancelled
}

// Booking represents a client appointment with one employee
type Booking struct {
	ID         int64
	ClientName string
	Phone      string
	EmployeeID string
	StartTime  time.Time
	EndTime    time.Time
	Status     BookingStatus

	// Denormalized service data for history
	ServiceID       string
	ServiceName     string
	DurationMinutes int

	// Event id in the external calendar, set after a successful sync
	ExternalCalendarEventID *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking occupies its interval
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// HasExternalEvent returns true if the booking is linked to a calendar event
func (b *Booking) HasExternalEvent() bool {
	return b.ExternalCalendarEventID != nil && *b.ExternalCalendarEventID != ""
}

// Interval returns the half-open interval [StartTime, EndTime)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// BookingUpdate is the set of fields a store update may change; nil fields are left as is
type BookingUpdate struct {
	Status                  *BookingStatus
	ExternalCalendarEventID *string
}

// IsEmpty returns true if the update changes nothing
func (u BookingUpdate) IsEmpty() bool {
	return u.Status == nil && u.ExternalCalendarEventID == nil
}

// BookingsFilter selects bookings for the administrative listing
type BookingsFilter struct {
	From             time.Time // inclusive, compared with start_time
	To               time.Time // exclusive
	EmployeeIDs      []string  // empty = all employees
	IncludeCancelled bool
}
