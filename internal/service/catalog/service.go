package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

// Service answers read-only questions about the configured business
type Service struct {
	catalog     *domain.Catalog
	calendar    ShiftCalendar
	granularity time.Duration
}

// NewService creates the catalog service
func NewService(catalog *domain.Catalog, calendar ShiftCalendar, granularity time.Duration) *Service {
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularity
	}
	return &Service{
		catalog:     catalog,
		calendar:    calendar,
		granularity: granularity,
	}
}

// GetCatalog returns services and employees in configuration order together with the shifts
func (s *Service) GetCatalog(ctx context.Context) *models.CatalogResponse {
	services, employees, shifts := models.FromDomain(s.catalog.Services(), s.catalog.Employees(), s.calendar.Windows())

	return &models.CatalogResponse{
		TimeZone:               s.calendar.Location().String(),
		SlotGranularityMinutes: int(s.granularity / time.Minute),
		Shifts:                 shifts,
		Services:               services,
		Employees:              employees,
	}
}
