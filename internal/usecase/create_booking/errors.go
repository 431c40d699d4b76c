package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

var (
	// ErrInvalidInput is returned when a required field is missing
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrInvalidArgument)

	// ErrInvalidClientName is returned when the client name is blank or too long
	ErrInvalidClientName = fmt.Errorf("create_booking: invalid client name: %w", domain.ErrInvalidArgument)

	// ErrInvalidPhone is returned when the phone is not in E.164 form (+ and up to 15 digits)
	ErrInvalidPhone = fmt.Errorf("create_booking: invalid phone number: %w", domain.ErrInvalidArgument)

	// ErrServiceNotFound is returned for an unknown service id
	ErrServiceNotFound = fmt.Errorf("create_booking: unknown service: %w", domain.ErrInvalidArgument)

	// ErrEmployeeNotFound is returned for an unknown employee id
	ErrEmployeeNotFound = fmt.Errorf("create_booking: unknown employee: %w", domain.ErrInvalidArgument)

	// ErrInvalidStartTime is returned when the start is not an ISO date-time
	ErrInvalidStartTime = fmt.Errorf("create_booking: invalid start time: %w", domain.ErrInvalidArgument)

	// ErrOutsideBusinessHours is returned when the booking does not fit in one shift
	ErrOutsideBusinessHours = fmt.Errorf("create_booking: %w", scheduling.ErrOutsideBusinessHours)

	// ErrInPast is returned when the booking would end at or before now
	ErrInPast = fmt.Errorf("create_booking: %w", scheduling.ErrInPast)

	// ErrSlotNotAvailable is returned when the employee is already booked for part of the interval
	ErrSlotNotAvailable = fmt.Errorf("create_booking: slot is not available: %w", domain.ErrConflict)

	// ErrInternal is returned when the booking store fails
	ErrInternal = fmt.Errorf("create_booking: internal error: %w", domain.ErrUnavailable)
)
