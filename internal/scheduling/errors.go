package scheduling

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidShift is returned when shift windows are malformed or overlap
	ErrInvalidShift = errors.New("scheduling: invalid shift window")

	// ErrOutsideBusinessHours is returned when a booking does not fit inside a single shift
	ErrOutsideBusinessHours = fmt.Errorf("scheduling: booking is outside business hours: %w", domain.ErrFailedPrecondition)

	// ErrInPast is returned when a booking ends at or before the current instant
	ErrInPast = fmt.Errorf("scheduling: booking is in the past: %w", domain.ErrFailedPrecondition)

	// ErrOverlap is returned when a booking overlaps an active booking of the same employee
	ErrOverlap = fmt.Errorf("scheduling: slot is already booked: %w", domain.ErrConflict)
)
