package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest checks that required parameters are present
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	return nil
}

// resolveEmployees returns the employee ids to search, in catalog order
func resolveEmployees(catalog *domain.Catalog, employeeID string) ([]string, error) {
	if employeeID == "" {
		return catalog.EmployeeIDs(), nil
	}

	if _, ok := catalog.Employee(employeeID); !ok {
		return nil, fmt.Errorf("%w: %q", ErrEmployeeNotFound, employeeID)
	}

	return []string{employeeID}, nil
}
