package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository is the part of the booking store the service uses
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, id int64, update domain.BookingUpdate) error
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Calendar gives the operating zone and day boundaries
type Calendar interface {
	ParseDate(value string) (time.Time, error)
	DayBounds(date time.Time) (time.Time, time.Time)
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

// Logger is the logging surface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider reads the system clock
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopMetrics struct{}

func (nopMetrics) IncBookingOperation(string, string) {}
