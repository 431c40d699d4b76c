package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	ServiceID string          `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot is one free interval; times are RFC 3339 in the operating zone
type AvailableSlot struct {
	EmployeeID string `json:"employeeId"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

// FromUseCaseResponse converts the use case response into the HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			EmployeeID: slot.EmployeeID,
			Start:      slot.Start.Format(time.RFC3339),
			End:        slot.End.Format(time.RFC3339),
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}

// ToUseCaseRequest builds the use case request from query parameters
func ToUseCaseRequest(date, serviceID, employeeID string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		Date:       date,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
	}
}
