package domain

import "time"

// Default scheduling values of the reference deployment
const (
	DefaultTimeZone               = "Europe/Madrid"
	DefaultSlotGranularity        = 5 * time.Minute
	DefaultMaxCreateAttempts      = 3
	DefaultCalendarAttendeeDomain = "example.com"
)

// Limits
const (
	MaxClientNameLength = 200
	MaxListRangeDays    = 62
)

// Time format constants
const (
	TimeFormat          = "15:04"            // HH:MM
	DateFormat          = "2006-01-02"       // YYYY-MM-DD
	LocalDateTimeFormat = "2006-01-02T15:04" // start without zone, seconds optional
)
