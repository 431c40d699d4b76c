package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName string `json:"clientName"`
	Phone      string `json:"phone"`     // "+34600111222"
	ServiceID  string `json:"serviceId"` // "haircut"
	EmployeeID string `json:"employeeId"`
	Start      string `json:"start"` // "2025-03-03T10:00" or RFC 3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                      int64   `json:"id"`
	ClientName              string  `json:"clientName"`
	Phone                   string  `json:"phone"`
	ServiceID               string  `json:"serviceId"`
	ServiceName             string  `json:"serviceName"`
	DurationMinutes         int     `json:"durationMinutes"`
	EmployeeID              string  `json:"employeeId"`
	Start                   string  `json:"start"`
	End                     string  `json:"end"`
	Status                  string  `json:"status"`
	ExternalCalendarEventID *string `json:"externalCalendarEventId,omitempty"`
	CreatedAt               string  `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case request
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		ClientName: r.ClientName,
		Phone:      r.Phone,
		ServiceID:  r.ServiceID,
		EmployeeID: r.EmployeeID,
		Start:      r.Start,
	}
}

// FromUseCaseResponse converts the use case response, rendering times in loc
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *BookingResponse {
	return &BookingResponse{
		ID:                      resp.ID,
		ClientName:              resp.ClientName,
		Phone:                   resp.Phone,
		ServiceID:               resp.ServiceID,
		ServiceName:             resp.ServiceName,
		DurationMinutes:         resp.DurationMinutes,
		EmployeeID:              resp.EmployeeID,
		Start:                   resp.Start.In(loc).Format(time.RFC3339),
		End:                     resp.End.In(loc).Format(time.RFC3339),
		Status:                  resp.Status,
		ExternalCalendarEventID: resp.ExternalCalendarEventID,
		CreatedAt:               resp.CreatedAt.Format(time.RFC3339),
	}
}
