package get_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/catalog
// Public endpoint: services, employees, working hours and the slot step
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result := h.service.GetCatalog(r.Context())

	h.logger.Info("GET /catalog - Catalog retrieved successfully: services=%d, employees=%d",
		len(result.Services), len(result.Employees))
	handlers.RespondJSON(w, http.StatusOK, result)
}
