package create_booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
)

// memoryRepo is an in-memory booking store that enforces the no-overlap constraint
type memoryRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64

	listErrs    []error // returned by successive ListActive calls, nil entries mean success
	createErr   error
	updateErr   error
	listCalls   int
	createCalls int
	updates     []domain.BookingUpdate
}

func (r *memoryRepo) ListActive(ctx context.Context, from, to time.Time, employeeIDs []string) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++
	if len(r.listErrs) > 0 {
		err := r.listErrs[0]
		r.listErrs = r.listErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	ids := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		ids[id] = true
	}

	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.IsActive() && ids[b.EmployeeID] && !b.StartTime.Before(from) && b.StartTime.Before(to) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCalls++
	if r.createErr != nil {
		return nil, r.createErr
	}

	for _, b := range r.bookings {
		if b.IsActive() && b.EmployeeID == booking.EmployeeID && b.Interval().Overlaps(booking.Interval()) {
			return nil, bookingRepo.ErrSlotNotAvailable
		}
	}

	r.nextID++
	booking.ID = r.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	cp := *booking
	r.bookings = append(r.bookings, &cp)
	return booking, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, update domain.BookingUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updates = append(r.updates, update)
	if r.updateErr != nil {
		return r.updateErr
	}
	for _, b := range r.bookings {
		if b.ID == id {
			if update.Status != nil {
				b.Status = *update.Status
			}
			if update.ExternalCalendarEventID != nil {
				id := *update.ExternalCalendarEventID
				b.ExternalCalendarEventID = &id
			}
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

// passthroughTx runs fn directly and discards rows inserted by a failed attempt.
// Commit errors can be injected; each one is consumed by an attempt whose fn succeeded.
type passthroughTx struct {
	repo       *memoryRepo
	commitErrs []error
	calls      int
}

func (tx *passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++

	tx.repo.mu.Lock()
	snapshot := len(tx.repo.bookings)
	tx.repo.mu.Unlock()

	rollback := func() {
		tx.repo.mu.Lock()
		tx.repo.bookings = tx.repo.bookings[:snapshot]
		tx.repo.mu.Unlock()
	}

	if err := fn(ctx); err != nil {
		rollback()
		return err
	}
	if len(tx.commitErrs) > 0 {
		err := tx.commitErrs[0]
		tx.commitErrs = tx.commitErrs[1:]
		if err != nil {
			rollback()
			return err
		}
	}
	return nil
}

type fakeSync struct {
	eventID string
	err     error
	calls   []domain.SyncAction
}

func (s *fakeSync) Sync(ctx context.Context, action domain.SyncAction, booking *domain.Booking) (string, error) {
	s.calls = append(s.calls, action)
	return s.eventID, s.err
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
