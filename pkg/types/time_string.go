package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString is returned when a value is not a valid HH:MM wall-clock time
var ErrInvalidTimeString = errors.New("invalid time string format")

const timeStringLayout = "15:04"

// TimeString is a wall-clock time of day in HH:MM format ("09:00", "16:30").
// It carries no date and no location.
type TimeString string

// NewTimeStringFromString parses and validates an HH:MM string
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a valid HH:MM time
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeStringLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// String implements fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns the number of minutes since midnight.
// An invalid value yields 0; call Validate first when the input is untrusted.
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// Clock returns hour and minute components
func (t TimeString) Clock() (hour, minute int) {
	m := t.Minutes()
	return m / 60, m % 60
}

// IsBefore returns true if t is strictly earlier in the day than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// On places the time of day on the calendar date of day in loc
func (t TimeString) On(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	hour, minute := t.Clock()
	return time.Date(y, m, d, hour, minute, 0, 0, loc)
}

// UnmarshalText implements encoding.TextUnmarshaler so the type can be read from TOML/JSON
func (t *TimeString) UnmarshalText(text []byte) error {
	ts, err := NewTimeStringFromString(string(text))
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t), nil
}
