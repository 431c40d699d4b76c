package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ShiftCalendar projects the daily shift windows onto calendar dates in the operating zone.
// It is immutable after construction.
type ShiftCalendar struct {
	windows []domain.ShiftWindow
	loc     *time.Location
}

// NewShiftCalendar validates the windows and orders them by start time
func NewShiftCalendar(windows []domain.ShiftWindow, loc *time.Location) (*ShiftCalendar, error) {
	if loc == nil {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidShift)
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("%w: at least one shift is required", ErrInvalidShift)
	}

	sorted := make([]domain.ShiftWindow, len(windows))
	copy(sorted, windows)

	for _, w := range sorted {
		if err := w.Start.Validate(); err != nil {
			return nil, fmt.Errorf("%w: start: %v", ErrInvalidShift, err)
		}
		if err := w.End.Validate(); err != nil {
			return nil, fmt.Errorf("%w: end: %v", ErrInvalidShift, err)
		}
		if !w.Start.IsBefore(w.End) {
			return nil, fmt.Errorf("%w: %s-%s ends before it starts", ErrInvalidShift, w.Start, w.End)
		}
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.IsBefore(sorted[j].Start)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start.IsBefore(sorted[i-1].End) {
			return nil, fmt.Errorf("%w: %s-%s overlaps %s-%s", ErrInvalidShift,
				sorted[i].Start, sorted[i].End, sorted[i-1].Start, sorted[i-1].End)
		}
	}

	return &ShiftCalendar{windows: sorted, loc: loc}, nil
}

// Location returns the operating time zone
func (c *ShiftCalendar) Location() *time.Location {
	return c.loc
}

// Windows returns a copy of the shift windows in chronological order
func (c *ShiftCalendar) Windows() []domain.ShiftWindow {
	out := make([]domain.ShiftWindow, len(c.windows))
	copy(out, c.windows)
	return out
}

// ShiftsForDate returns the absolute shift intervals of the calendar date of date,
// taken in the operating zone
func (c *ShiftCalendar) ShiftsForDate(date time.Time) []domain.Interval {
	shifts := make([]domain.Interval, 0, len(c.windows))
	for _, w := range c.windows {
		shifts = append(shifts, domain.Interval{
			Start: w.Start.On(date, c.loc),
			End:   w.End.On(date, c.loc),
		})
	}
	return shifts
}

// DayBounds returns [00:00, next day 00:00) of date in the operating zone
func (c *ShiftCalendar) DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.In(c.loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, c.loc)
	return start, start.AddDate(0, 0, 1)
}

// ParseDate parses YYYY-MM-DD as a date in the operating zone
func (c *ShiftCalendar) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, value, c.loc)
}
