package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ServiceResponse is one bookable service
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// EmployeeResponse is one staff member
type EmployeeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShiftResponse is a daily working window in HH:MM
type ShiftResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CatalogResponse describes everything a client needs to offer bookings
type CatalogResponse struct {
	TimeZone               string             `json:"timeZone"`
	SlotGranularityMinutes int                `json:"slotGranularityMinutes"`
	Shifts                 []ShiftResponse    `json:"shifts"`
	Services               []ServiceResponse  `json:"services"`
	Employees              []EmployeeResponse `json:"employees"`
}

// FromDomain converts catalog entities and shift windows into the response
func FromDomain(services []domain.Service, employees []domain.Employee, windows []domain.ShiftWindow) ([]ServiceResponse, []EmployeeResponse, []ShiftResponse) {
	svc := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		svc = append(svc, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}

	emp := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		emp = append(emp, EmployeeResponse{ID: e.ID, Name: e.Name})
	}

	shifts := make([]ShiftResponse, 0, len(windows))
	for _, w := range windows {
		shifts = append(shifts, ShiftResponse{Start: w.Start.String(), End: w.End.String()})
	}

	return svc, emp, shifts
}
