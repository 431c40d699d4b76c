package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestCalculator_ComputeSlots_EmptyDay(t *testing.T) {
	cal := defaultCalendar(t)
	loc := madrid(t)
	calc := NewCalculator(cal, 5*time.Minute)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, loc)

	slots := calc.ComputeSlots(date, haircut(), "david", nil, now)

	// 09:00..12:30 and 16:00..19:30 every 5 minutes
	require.Len(t, slots, 86)
	assert.True(t, slots[0].Start.Equal(time.Date(2025, 3, 10, 9, 0, 0, 0, loc)))
	assert.True(t, slots[42].Start.Equal(time.Date(2025, 3, 10, 12, 30, 0, 0, loc)))
	assert.True(t, slots[42].End.Equal(time.Date(2025, 3, 10, 13, 0, 0, 0, loc)))
	assert.True(t, slots[43].Start.Equal(time.Date(2025, 3, 10, 16, 0, 0, 0, loc)))
	assert.Equal(t, "david", slots[0].EmployeeID)
}

func TestCalculator_ComputeSlots_SkipsOverlaps(t *testing.T) {
	cal := defaultCalendar(t)
	loc := madrid(t)
	calc := NewCalculator(cal, 5*time.Minute)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, loc)
	booked := activeBooking("david",
		time.Date(2025, 3, 10, 10, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 10, 30, 0, 0, loc))

	slots := calc.ComputeSlots(date, haircut(), "david", []*domain.Booking{booked}, now)

	// starts 09:35..10:25 collide with [10:00,10:30)
	assert.Len(t, slots, 86-11)

	var starts []string
	for _, s := range slots {
		assert.False(t, s.Start.Before(booked.EndTime) && booked.StartTime.Before(s.End),
			"slot %s overlaps booking", s.Start)
		starts = append(starts, s.Start.In(loc).Format("15:04"))
	}
	assert.Contains(t, starts, "09:30")
	assert.Contains(t, starts, "10:30")
	assert.NotContains(t, starts, "10:00")
}

func TestCalculator_ComputeSlots_IgnoresCancelled(t *testing.T) {
	cal := defaultCalendar(t)
	loc := madrid(t)
	calc := NewCalculator(cal, 5*time.Minute)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, loc)
	cancelled := activeBooking("david",
		time.Date(2025, 3, 10, 10, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 10, 30, 0, 0, loc))
	cancelled.Status = domain.StatusCancelled

	slots := calc.ComputeSlots(date, haircut(), "david", []*domain.Booking{cancelled}, now)

	assert.Len(t, slots, 86)
}

func TestCalculator_ComputeSlots_DropsEndedSlots(t *testing.T) {
	cal := defaultCalendar(t)
	loc := madrid(t)
	calc := NewCalculator(cal, 5*time.Minute)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	now := time.Date(2025, 3, 10, 9, 32, 0, 0, loc)

	slots := calc.ComputeSlots(date, haircut(), "marta", nil, now)

	// 09:00 ends at 09:30, before now; 09:05 ends at 09:35
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.True(t, s.End.After(now))
	}
	assert.True(t, slots[0].Start.Equal(time.Date(2025, 3, 10, 9, 5, 0, 0, loc)))
	assert.Len(t, slots, 85)
}

func TestCalculator_ComputeSlots_DropsSlotEndingExactlyNow(t *testing.T) {
	cal := defaultCalendar(t)
	loc := madrid(t)
	calc := NewCalculator(cal, 5*time.Minute)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, loc)

	slots := calc.ComputeSlots(date, haircut(), "marta", nil, now)

	// 09:00-09:30 ends at now and is gone
	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Start.Equal(time.Date(2025, 3, 10, 9, 5, 0, 0, loc)))
	assert.True(t, slots[0].End.Equal(time.Date(2025, 3, 10, 9, 35, 0, 0, loc)))
	assert.Len(t, slots, 85)

	// one nanosecond earlier it is still offered
	slots = calc.ComputeSlots(date, haircut(), "marta", nil, now.Add(-time.Nanosecond))
	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Start.Equal(time.Date(2025, 3, 10, 9, 0, 0, 0, loc)))
	assert.Len(t, slots, 86)
}

func TestCalculator_ComputeSlots_PastDayIsEmpty(t *testing.T) {
	cal := defaultCalendar(t)
	loc := madrid(t)
	calc := NewCalculator(cal, 5*time.Minute)

	slots := calc.ComputeSlots(
		time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		haircut(), "david", nil,
		time.Date(2025, 3, 11, 8, 0, 0, 0, loc),
	)

	assert.Empty(t, slots)
}

func TestCalculator_ComputeSlots_ServiceLongerThanShift(t *testing.T) {
	cal := defaultCalendar(t)
	loc := madrid(t)
	calc := NewCalculator(cal, 5*time.Minute)

	long := domain.Service{ID: "long", DurationMinutes: 300}
	slots := calc.ComputeSlots(time.Date(2025, 3, 10, 0, 0, 0, 0, loc), long, "david", nil,
		time.Date(2025, 3, 1, 0, 0, 0, 0, loc))

	assert.Empty(t, slots)
}

func TestCalculator_ComputeSlots_WithinShifts(t *testing.T) {
	cal := defaultCalendar(t)
	loc := madrid(t)
	calc := NewCalculator(cal, 0)
	assert.Equal(t, domain.DefaultSlotGranularity, calc.Granularity())

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	service := domain.Service{ID: "full_package", DurationMinutes: 55}
	slots := calc.ComputeSlots(date, service, "david", nil, time.Date(2025, 3, 1, 0, 0, 0, 0, loc))

	shifts := cal.ShiftsForDate(date)
	for _, s := range slots {
		in := false
		for _, shift := range shifts {
			if shift.Contains(domain.Interval{Start: s.Start, End: s.End}) {
				in = true
			}
		}
		assert.True(t, in, "slot %s-%s outside shifts", s.Start, s.End)
		assert.Equal(t, 55*time.Minute, s.End.Sub(s.Start))
	}
}
