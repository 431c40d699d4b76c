package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Calculator enumerates free slots for one employee and one service on a date
type Calculator struct {
	calendar    *ShiftCalendar
	granularity time.Duration
}

// NewCalculator creates a calculator. A non-positive granularity falls back to domain.DefaultSlotGranularity.
func NewCalculator(calendar *ShiftCalendar, granularity time.Duration) *Calculator {
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularity
	}
	return &Calculator{calendar: calendar, granularity: granularity}
}

// Granularity returns the step between candidate slot starts
func (c *Calculator) Granularity() time.Duration {
	return c.granularity
}

// ComputeSlots returns the free slots of employeeID for service on the date of date.
// bookings must belong to the employee; cancelled entries are ignored.
// A candidate is kept when it fits in its shift, does not overlap an active booking
// and ends strictly after now. Slots come in shift order, then chronologically.
func (c *Calculator) ComputeSlots(
	date time.Time,
	service domain.Service,
	employeeID string,
	bookings []*domain.Booking,
	now time.Time,
) []domain.AvailableSlot {
	duration := time.Duration(service.DurationMinutes) * time.Minute
	if duration <= 0 {
		return []domain.AvailableSlot{}
	}

	busy := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		busy = append(busy, b.Interval())
	}

	slots := make([]domain.AvailableSlot, 0)
	for _, shift := range c.calendar.ShiftsForDate(date) {
		for cursor := shift.Start; !cursor.Add(duration).After(shift.End); cursor = cursor.Add(c.granularity) {
			candidate := domain.Interval{Start: cursor, End: cursor.Add(duration)}

			if !candidate.End.After(now) {
				continue
			}
			if overlapsAny(candidate, busy) {
				continue
			}

			slots = append(slots, domain.AvailableSlot{
				EmployeeID: employeeID,
				Start:      candidate.Start,
				End:        candidate.End,
			})
		}
	}

	return slots
}

func overlapsAny(candidate domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
