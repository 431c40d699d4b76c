package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

const operationCancel = "cancel"

// Service handles reads and cancellation of existing bookings
type Service struct {
	bookingRepo  BookingRepository
	catalog      *domain.Catalog
	calendar     Calendar
	loc          *time.Location
	calendarSync CalendarSync
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the bookings service
func NewService(
	bookingRepo BookingRepository,
	catalog *domain.Catalog,
	calendar Calendar,
	loc *time.Location,
	calendarSync CalendarSync,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		calendar:     calendar,
		loc:          loc,
		calendarSync: calendarSync,
		publisher:    publisher,
		metrics:      nopMetrics{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider replaces the clock
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WithMetrics enables outcome counters
func (s *Service) WithMetrics(m Metrics) *Service {
	if m != nil {
		s.metrics = m
	}
	return s
}

// GetByID returns one booking
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidBookingID
	}

	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, s.loc), nil
}

// List returns bookings of a date range for the administrative calendar.
// The range defaults to today and may span at most domain.MaxListRangeDays days.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, fromDate, toDate, err := s.buildFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	s.logger.Info("List: period=%s to %s, employees=%v, includeCancelled=%t",
		fromDate.Format(domain.DateFormat), toDate.Format(domain.DateFormat), filter.EmployeeIDs, filter.IncludeCancelled)

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))

	return &models.BookingListResponse{
		From:     fromDate.Format(domain.DateFormat),
		To:       toDate.Format(domain.DateFormat),
		Bookings: models.FromDomainBookingList(bookings, s.loc),
	}, nil
}

// Cancel moves a booking to the cancelled status.
// Cancelling an already cancelled booking succeeds without touching the store or the calendar.
// The external calendar event id is kept on the record.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	// 1. Validate id
	if id <= 0 {
		s.metrics.IncBookingOperation(operationCancel, "invalid")
		return nil, ErrInvalidBookingID
	}

	s.logger.Info("Cancel: cancelling booking id=%d", id)

	// 2. Load the booking
	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		s.metrics.IncBookingOperation(operationCancel, outcome(err))
		return nil, err
	}

	// 3. Already cancelled: nothing to do
	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%d is already cancelled", id)
		s.metrics.IncBookingOperation(operationCancel, "already_cancelled")
		return models.FromDomainBooking(booking, s.loc), nil
	}

	// 4. Update status
	if err := s.bookingRepo.Update(ctx, id, domain.BookingUpdate{Status: ptr.Ptr(domain.StatusCancelled)}); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", id)
			s.metrics.IncBookingOperation(operationCancel, "not_found")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		s.metrics.IncBookingOperation(operationCancel, "error")
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	booking.Status = domain.StatusCancelled
	booking.CancelledAt = ptr.Ptr(now)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	s.metrics.IncBookingOperation(operationCancel, "cancelled")

	// 5. Best-effort calendar removal and notification
	if booking.HasExternalEvent() {
		if _, err := s.calendarSync.Sync(ctx, domain.SyncActionDelete, booking); err != nil {
			s.logger.Warn("Cancel: calendar sync failed for booking id=%d: %v", id, err)
		}
	}

	event := domain.NewBookingEvent(domain.BookingEventCancelled, booking, now)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Cancel: failed to publish %s for booking id=%d: %v", event.Type, id, err)
	}

	return models.FromDomainBooking(booking, s.loc), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// buildFilter resolves the request dates into [from 00:00, day after to 00:00) in the operating zone
func (s *Service) buildFilter(req *models.ListBookingsRequest) (domain.BookingsFilter, time.Time, time.Time, error) {
	if req == nil {
		req = &models.ListBookingsRequest{}
	}

	fromDate := s.timeProvider.Now()
	if v := strings.TrimSpace(req.From); v != "" {
		d, err := s.calendar.ParseDate(v)
		if err != nil {
			return domain.BookingsFilter{}, time.Time{}, time.Time{}, fmt.Errorf("%w: from %q", ErrInvalidInput, v)
		}
		fromDate = d
	}

	toDate := fromDate
	if v := strings.TrimSpace(req.To); v != "" {
		d, err := s.calendar.ParseDate(v)
		if err != nil {
			return domain.BookingsFilter{}, time.Time{}, time.Time{}, fmt.Errorf("%w: to %q", ErrInvalidInput, v)
		}
		toDate = d
	}

	from, _ := s.calendar.DayBounds(fromDate)
	lastDay, to := s.calendar.DayBounds(toDate)
	if lastDay.Before(from) {
		return domain.BookingsFilter{}, time.Time{}, time.Time{}, fmt.Errorf("%w: to is before from", ErrInvalidTimeRange)
	}
	if days := calendarDays(from, lastDay); days > domain.MaxListRangeDays {
		return domain.BookingsFilter{}, time.Time{}, time.Time{}, fmt.Errorf("%w: %d days requested, at most %d", ErrInvalidTimeRange, days, domain.MaxListRangeDays)
	}

	filter := domain.BookingsFilter{
		From:             from,
		To:               to,
		IncludeCancelled: req.IncludeCancelled,
	}

	if id := strings.TrimSpace(req.EmployeeID); id != "" {
		if _, ok := s.catalog.Employee(id); !ok {
			return domain.BookingsFilter{}, time.Time{}, time.Time{}, fmt.Errorf("%w: unknown employee %q", ErrInvalidInput, id)
		}
		filter.EmployeeIDs = []string{id}
	}

	return filter, from, lastDay, nil
}

// calendarDays counts the days from a to b inclusive, ignoring DST shifts
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

func outcome(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return "not_found"
	}
	return "error"
}
