package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidInput is returned when a required parameter is missing
	ErrInvalidInput = fmt.Errorf("get_available_slots: invalid input data: %w", domain.ErrInvalidArgument)

	// ErrInvalidDate is returned when the date is not YYYY-MM-DD
	ErrInvalidDate = fmt.Errorf("get_available_slots: invalid date: %w", domain.ErrInvalidArgument)

	// ErrServiceNotFound is returned for an unknown service id
	ErrServiceNotFound = fmt.Errorf("get_available_slots: unknown service: %w", domain.ErrInvalidArgument)

	// ErrEmployeeNotFound is returned for an unknown employee id
	ErrEmployeeNotFound = fmt.Errorf("get_available_slots: unknown employee: %w", domain.ErrInvalidArgument)

	// ErrInternal is returned when the booking store cannot be read
	ErrInternal = fmt.Errorf("get_available_slots: internal error: %w", domain.ErrUnavailable)
)
