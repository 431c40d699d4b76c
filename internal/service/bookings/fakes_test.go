package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
)

type stubRepo struct {
	bookings  map[int64]*domain.Booking
	getErr    error
	updateErr error
	listErr   error

	updates []domain.BookingUpdate
	filters []domain.BookingsFilter
	listOut []*domain.Booking
}

func (r *stubRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubRepo) Update(ctx context.Context, id int64, update domain.BookingUpdate) error {
	r.updates = append(r.updates, update)
	if r.updateErr != nil {
		return r.updateErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if update.Status != nil {
		b.Status = *update.Status
	}
	return nil
}

func (r *stubRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.filters = append(r.filters, filter)
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.listOut, nil
}

type fakeSync struct {
	err   error
	calls []domain.SyncAction
}

func (s *fakeSync) Sync(ctx context.Context, action domain.SyncAction, booking *domain.Booking) (string, error) {
	s.calls = append(s.calls, action)
	return "", s.err
}

type fakePublisher struct {
	events []domain.BookingEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	p.events = append(p.events, event)
	return p.err
}

type countingMetrics struct {
	outcomes map[string]int
}

func (m *countingMetrics) IncBookingOperation(operation, outcome string) {
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[operation+"/"+outcome]++
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var errDBDown = errors.New("db down")
