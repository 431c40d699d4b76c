package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Requests

// ListBookingsRequest selects bookings for the administrative calendar view
type ListBookingsRequest struct {
	From             string // YYYY-MM-DD, inclusive; empty means today
	To               string // YYYY-MM-DD, inclusive; empty means From
	EmployeeID       string // empty means every employee
	IncludeCancelled bool
}

// Responses

// BookingResponse is the JSON view of a booking
type BookingResponse struct {
	ID                      int64   `json:"id"`
	ClientName              string  `json:"clientName"`
	Phone                   string  `json:"phone"`
	ServiceID               string  `json:"serviceId"`
	ServiceName             string  `json:"serviceName"`
	DurationMinutes         int     `json:"durationMinutes"`
	EmployeeID              string  `json:"employeeId"`
	Start                   string  `json:"start"` // RFC 3339 in the operating zone
	End                     string  `json:"end"`
	Status                  string  `json:"status"`
	ExternalCalendarEventID *string `json:"externalCalendarEventId,omitempty"`
	CancelledAt             *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse is the JSON view of a listing
type BookingListResponse struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Bookings []BookingResponse `json:"bookings"`
}

// Conversions

// FromDomainBooking converts a booking, rendering instants in loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                      b.ID,
		ClientName:              b.ClientName,
		Phone:                   b.Phone,
		ServiceID:               b.ServiceID,
		ServiceName:             b.ServiceName,
		DurationMinutes:         b.DurationMinutes,
		EmployeeID:              b.EmployeeID,
		Start:                   b.StartTime.In(loc).Format(time.RFC3339),
		End:                     b.EndTime.In(loc).Format(time.RFC3339),
		Status:                  string(b.Status),
		ExternalCalendarEventID: b.ExternalCalendarEventID,
		CreatedAt:               b.CreatedAt,
		UpdatedAt:               b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.In(loc).Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList converts a list of bookings
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		if resp := FromDomainBooking(booking, loc); resp != nil {
			out = append(out, *resp)
		}
	}
	return out
}
