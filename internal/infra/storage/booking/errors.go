package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no booking has the requested id
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable is returned when the exclusion constraint rejects an overlapping active booking
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrConcurrentUpdate is returned when the database aborts the statement because of a concurrent
	// transaction (serialization failure or deadlock); the caller may retry
	ErrConcurrentUpdate = errors.New("booking.repository: concurrent update")

	// ErrBuildQuery is returned when the SQL builder fails
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when the database rejects a statement
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be read
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
