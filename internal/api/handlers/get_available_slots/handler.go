package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID   = "serviceId is required"
	msgMissingDate        = "date is required"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgServiceNotFound    = "unknown service"
	msgEmployeeNotFound   = "unknown employee"
	msgInvalidQueryParams = "invalid query parameters"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (required, YYYY-MM-DD), serviceId (required), employeeId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date := query.Get("date")
	serviceID := query.Get("serviceId")
	employeeID := query.Get("employeeId")

	if date == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	if serviceID == "" {
		h.logger.Warn("GET /available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(date, serviceID, employeeID))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Invalid date: date=%s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: service_id=%s", serviceID)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /available-slots - Employee not found: employee_id=%s", employeeID)
			handlers.RespondBadRequest(w, msgEmployeeNotFound)

		case errors.Is(err, domain.ErrInvalidArgument):
			h.logger.Warn("GET /available-slots - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Error("GET /available-slots - Store unavailable: date=%s, service_id=%s, error=%v", date, serviceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, service_id=%s, error=%v", date, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, service_id=%s, slots_count=%d",
		date, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
