package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository is the part of the booking store used on the create path
type BookingRepository interface {
	ListActive(ctx context.Context, from, to time.Time, employeeIDs []string) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, id int64, update domain.BookingUpdate) error
}

// Validator checks the requested interval against shifts, the clock and existing bookings
type Validator interface {
	BusinessHours(start time.Time, duration time.Duration) (domain.Interval, error)
	NotInPast(interval domain.Interval, now time.Time) error
	NoOverlap(interval domain.Interval, bookings []*domain.Booking) error
}

// Calendar gives the operating zone and day boundaries
type Calendar interface {
	Location() *time.Location
	DayBounds(date time.Time) (time.Time, time.Time)
}

// TransactionManager runs a function inside a serializable transaction
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CalendarSync mirrors bookings into the external calendar
type CalendarSync interface {
	Sync(ctx context.Context, action domain.SyncAction, booking *domain.Booking) (string, error)
}

// EventPublisher sends booking lifecycle notifications
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Metrics counts booking outcomes
type Metrics interface {
	IncBookingOperation(operation, outcome string)
}

// TimeProvider supplies the current instant (replaced in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider reads the system clock
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopMetrics struct{}

func (nopMetrics) IncBookingOperation(string, string) {}
