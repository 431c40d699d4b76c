package list_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// ToServiceRequest builds the service request from query parameters
func ToServiceRequest(from, to, employeeID, includeCancelledStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		From:       from,
		To:         to,
		EmployeeID: employeeID,
	}

	// only active bookings unless asked otherwise
	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
