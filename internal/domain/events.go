package domain

import "time"

// SyncAction is the operation requested from the external calendar
type SyncAction string

const (
	SyncActionCreate SyncAction = "create"
	SyncActionDelete SyncAction = "delete"
)

// BookingEventType names a booking lifecycle notification
type BookingEventType string

const (
	BookingEventCreated   BookingEventType = "booking.created"
	BookingEventCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is published after a booking changes state
type BookingEvent struct {
	Type        BookingEventType `json:"type"`
	BookingID   int64            `json:"bookingId"`
	ClientName  string           `json:"clientName"`
	Phone       string           `json:"phone"`
	ServiceID   string           `json:"serviceId"`
	ServiceName string           `json:"serviceName"`
	EmployeeID  string           `json:"employeeId"`
	Start       time.Time        `json:"start"`
	End         time.Time        `json:"end"`
	OccurredAt  time.Time        `json:"occurredAt"`
}

// NewBookingEvent builds an event snapshot of b
func NewBookingEvent(eventType BookingEventType, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:        eventType,
		BookingID:   b.ID,
		ClientName:  b.ClientName,
		Phone:       b.Phone,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		EmployeeID:  b.EmployeeID,
		Start:       b.StartTime,
		End:         b.EndTime,
		OccurredAt:  at,
	}
}
