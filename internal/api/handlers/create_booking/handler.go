package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidClientName    = "client name is required"
	msgInvalidPhone         = "invalid phone number, expected international format like +34600111222"
	msgServiceNotFound      = "unknown service"
	msgEmployeeNotFound     = "unknown employee"
	msgInvalidStartTime     = "invalid start, expected YYYY-MM-DDTHH:MM or RFC 3339"
	msgInvalidRequest       = "invalid booking request"
	msgOutsideBusinessHours = "the booking does not fit in the working hours"
	msgInPast               = "the requested time is in the past"
	msgSlotNotAvailable     = "the selected time slot is not available"
)

type Handler struct {
	useCase CreateBookingUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: employee_id=%s, start=%s", req.EmployeeID, req.Start)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /bookings - Outside business hours: service_id=%s, start=%s", req.ServiceID, req.Start)
			handlers.RespondUnprocessable(w, msgOutsideBusinessHours)

		case errors.Is(err, createBooking.ErrInPast):
			h.logger.Warn("POST /bookings - Start in the past: start=%s", req.Start)
			handlers.RespondUnprocessable(w, msgInPast)

		case errors.Is(err, createBooking.ErrInvalidClientName):
			h.logger.Warn("POST /bookings - Invalid client name")
			handlers.RespondBadRequest(w, msgInvalidClientName)

		case errors.Is(err, createBooking.ErrInvalidPhone):
			h.logger.Warn("POST /bookings - Invalid phone")
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrEmployeeNotFound):
			h.logger.Warn("POST /bookings - Employee not found: employee_id=%s", req.EmployeeID)
			handlers.RespondBadRequest(w, msgEmployeeNotFound)

		case errors.Is(err, createBooking.ErrInvalidStartTime):
			h.logger.Warn("POST /bookings - Invalid start: start=%s", req.Start)
			handlers.RespondBadRequest(w, msgInvalidStartTime)

		case errors.Is(err, domain.ErrInvalidArgument):
			h.logger.Warn("POST /bookings - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: employee_id=%s, error=%v", req.EmployeeID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: employee_id=%s, service_id=%s, error=%v",
				req.EmployeeID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, employee_id=%s, service_id=%s",
		result.ID, result.EmployeeID, result.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.loc))
}
