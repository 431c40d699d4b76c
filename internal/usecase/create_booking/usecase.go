package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const operationCreate = "create"

// UseCase admits new bookings
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      *domain.Catalog
	calendar     Calendar
	validator    Validator
	txManager    TransactionManager
	calendarSync CalendarSync
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	maxAttempts  int
}

// NewUseCase creates the use case.
// maxAttempts bounds how many times a transaction aborted by a concurrent writer is retried;
// values below 1 fall back to domain.DefaultMaxCreateAttempts.
func NewUseCase(
	bookingRepo BookingRepository,
	catalog *domain.Catalog,
	calendar Calendar,
	validator Validator,
	txManager TransactionManager,
	calendarSync CalendarSync,
	publisher EventPublisher,
	logger Logger,
	maxAttempts int,
) *UseCase {
	if maxAttempts < 1 {
		maxAttempts = domain.DefaultMaxCreateAttempts
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		calendar:     calendar,
		validator:    validator,
		txManager:    txManager,
		calendarSync: calendarSync,
		publisher:    publisher,
		metrics:      nopMetrics{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		maxAttempts:  maxAttempts,
	}
}

// WithTimeProvider replaces the clock
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithMetrics enables outcome counters
func (uc *UseCase) WithMetrics(m Metrics) *UseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// Execute validates and stores a new booking.
// Admission runs in a serializable transaction that locks the employee's bookings of the day.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Argument shape
	input, err := validateRequest(req, uc.catalog, uc.calendar.Location())
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingOperation(operationCreate, "invalid")
		return nil, err
	}

	uc.logger.Info("CreateBooking: service=%s, employee=%s, start=%s",
		input.service.ID, input.employee.ID, input.start.Format(time.RFC3339))

	// 2. Business hours, then past
	interval, err := uc.validator.BusinessHours(input.start, time.Duration(input.service.DurationMinutes)*time.Minute)
	if err != nil {
		uc.logger.Warn("CreateBooking: %s-%s outside business hours", interval.Start.Format(time.RFC3339), interval.End.Format(time.RFC3339))
		uc.metrics.IncBookingOperation(operationCreate, "rejected")
		return nil, ErrOutsideBusinessHours
	}

	now := uc.timeProvider.Now()
	if err := uc.validator.NotInPast(interval, now); err != nil {
		uc.logger.Warn("CreateBooking: interval ends at %s, now=%s", interval.End.Format(time.RFC3339), now.Format(time.RFC3339))
		uc.metrics.IncBookingOperation(operationCreate, "rejected")
		return nil, ErrInPast
	}

	// 3. Admission with bounded retry on concurrent updates
	var created *domain.Booking
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		created, err = uc.admit(ctx, input, interval)
		if err == nil {
			break
		}
		if !isRetryable(err) {
			uc.metrics.IncBookingOperation(operationCreate, outcome(err))
			return nil, err
		}
		uc.logger.Warn("CreateBooking: concurrent update on attempt %d/%d: %v", attempt, uc.maxAttempts, err)
	}

	if err != nil {
		uc.logger.Warn("CreateBooking: giving up after %d attempts, employee=%s, start=%s",
			uc.maxAttempts, input.employee.ID, input.start.Format(time.RFC3339))
		uc.metrics.IncBookingOperation(operationCreate, "conflict")
		return nil, fmt.Errorf("%w: concurrent bookings for employee %s", ErrSlotNotAvailable, input.employee.ID)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)
	uc.metrics.IncBookingOperation(operationCreate, "created")

	// 4. Best-effort calendar sync, then the notification
	uc.syncCalendar(ctx, created)
	uc.publish(ctx, created, now)

	return toResponse(created), nil
}

// admit runs one serializable attempt: lock the day, check overlap, insert
func (uc *UseCase) admit(ctx context.Context, input *bookingInput, interval domain.Interval) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Employee bookings of the day, locked FOR UPDATE
		dayStart, dayEnd := uc.calendar.DayBounds(input.start)
		bookings, err := uc.bookingRepo.ListActive(txCtx, dayStart, dayEnd, []string{input.employee.ID})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrConcurrentUpdate) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 3.2. Overlap check
		if err := uc.validator.NoOverlap(interval, bookings); err != nil {
			uc.logger.Warn("CreateBooking: slot not available, employee=%s, start=%s",
				input.employee.ID, interval.Start.Format(time.RFC3339))
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}

		// 3.3. Insert with denormalized service data
		booking := &domain.Booking{
			ClientName:      input.clientName,
			Phone:           input.phone,
			ServiceID:       input.service.ID,
			ServiceName:     input.service.Name,
			DurationMinutes: input.service.DurationMinutes,
			EmployeeID:      input.employee.ID,
			StartTime:       interval.Start,
			EndTime:         interval.End,
			Status:          domain.StatusActive,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				uc.logger.Warn("CreateBooking: exclusion constraint rejected employee=%s, start=%s",
					input.employee.ID, interval.Start.Format(time.RFC3339))
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			case errors.Is(err, bookingRepo.ErrConcurrentUpdate):
				return err
			default:
				uc.logger.Error("CreateBooking: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		if isRetryable(err) || errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	return result, nil
}

func (uc *UseCase) syncCalendar(ctx context.Context, created *domain.Booking) {
	eventID, err := uc.calendarSync.Sync(ctx, domain.SyncActionCreate, created)
	if err != nil {
		uc.logger.Warn("CreateBooking: calendar sync failed for booking id=%d: %v", created.ID, err)
		return
	}
	if eventID == "" {
		return
	}

	if err := uc.bookingRepo.Update(ctx, created.ID, domain.BookingUpdate{ExternalCalendarEventID: ptr.Ptr(eventID)}); err != nil {
		uc.logger.Warn("CreateBooking: failed to attach calendar event to booking id=%d: %v", created.ID, err)
		return
	}

	created.ExternalCalendarEventID = ptr.Ptr(eventID)
	uc.logger.Info("CreateBooking: booking id=%d linked to calendar event %s", created.ID, eventID)
}

func (uc *UseCase) publish(ctx context.Context, created *domain.Booking, now time.Time) {
	event := domain.NewBookingEvent(domain.BookingEventCreated, created, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%d: %v", event.Type, created.ID, err)
	}
}

// isRetryable reports whether the attempt was aborted by a concurrent transaction
func isRetryable(err error) bool {
	return errors.Is(err, bookingRepo.ErrConcurrentUpdate) || txmanager.IsSerializationFailure(err)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, scheduling.ErrOutsideBusinessHours), errors.Is(err, scheduling.ErrInPast):
		return "rejected"
	default:
		return "error"
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                      b.ID,
		ClientName:              b.ClientName,
		Phone:                   b.Phone,
		ServiceID:               b.ServiceID,
		ServiceName:             b.ServiceName,
		DurationMinutes:         b.DurationMinutes,
		EmployeeID:              b.EmployeeID,
		Start:                   b.StartTime,
		End:                     b.EndTime,
		Status:                  string(b.Status),
		ExternalCalendarEventID: b.ExternalCalendarEventID,
		CreatedAt:               b.CreatedAt,
	}
}
