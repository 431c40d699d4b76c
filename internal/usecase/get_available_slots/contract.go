package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository is the read side of the booking store
type BookingRepository interface {
	// ListActive returns active bookings of the employees whose start lies in [from, to)
	ListActive(ctx context.Context, from, to time.Time, employeeIDs []string) ([]*domain.Booking, error)
}

// SlotCalculator enumerates free slots of one employee
type SlotCalculator interface {
	ComputeSlots(date time.Time, service domain.Service, employeeID string, bookings []*domain.Booking, now time.Time) []domain.AvailableSlot
}

// Calendar gives the operating day boundaries
type Calendar interface {
	ParseDate(value string) (time.Time, error)
	DayBounds(date time.Time) (time.Time, time.Time)
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
