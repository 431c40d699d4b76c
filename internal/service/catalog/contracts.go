package catalog

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ShiftCalendar exposes the configured working windows
type ShiftCalendar interface {
	Location() *time.Location
	Windows() []domain.ShiftWindow
}
