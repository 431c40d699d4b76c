package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Validator checks a requested booking against shifts, the clock and existing bookings
type Validator struct {
	calendar *ShiftCalendar
}

func NewValidator(calendar *ShiftCalendar) *Validator {
	return &Validator{calendar: calendar}
}

// BusinessHours returns the booking interval if a single shift of start's date contains it
func (v *Validator) BusinessHours(start time.Time, duration time.Duration) (domain.Interval, error) {
	interval := domain.Interval{Start: start, End: start.Add(duration)}

	for _, shift := range v.calendar.ShiftsForDate(start) {
		if shift.Contains(interval) {
			return interval, nil
		}
	}

	return interval, ErrOutsideBusinessHours
}

// NotInPast rejects intervals that end at or before now
func (v *Validator) NotInPast(interval domain.Interval, now time.Time) error {
	if !interval.End.After(now) {
		return ErrInPast
	}
	return nil
}

// NoOverlap rejects intervals overlapping an active booking of the same employee
func (v *Validator) NoOverlap(interval domain.Interval, bookings []*domain.Booking) error {
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		if interval.Overlaps(b.Interval()) {
			return ErrOverlap
		}
	}
	return nil
}

// Validate runs the checks in priority order (hours, past, overlap) and returns the first failure
func (v *Validator) Validate(
	start time.Time,
	service domain.Service,
	bookings []*domain.Booking,
	now time.Time,
) (domain.Interval, error) {
	interval, err := v.BusinessHours(start, time.Duration(service.DurationMinutes)*time.Minute)
	if err != nil {
		return interval, err
	}

	if err := v.NotInPast(interval, now); err != nil {
		return interval, err
	}

	if err := v.NoOverlap(interval, bookings); err != nil {
		return interval, err
	}

	return interval, nil
}
