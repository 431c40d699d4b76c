package bookings

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBookingNotFound is returned when no booking has the requested id
	ErrBookingNotFound = fmt.Errorf("bookings: booking not found: %w", domain.ErrNotFound)

	// ErrInvalidBookingID is returned for a non-positive id
	ErrInvalidBookingID = fmt.Errorf("bookings: booking id must be positive: %w", domain.ErrInvalidArgument)

	// ErrInvalidInput is returned for malformed filter values
	ErrInvalidInput = fmt.Errorf("bookings: invalid input data: %w", domain.ErrInvalidArgument)

	// ErrInvalidTimeRange is returned when the listing range is reversed or too long
	ErrInvalidTimeRange = fmt.Errorf("bookings: invalid time range: %w", domain.ErrInvalidArgument)

	// ErrInternal is returned when the booking store fails
	ErrInternal = fmt.Errorf("bookings: internal error: %w", domain.ErrUnavailable)
)
