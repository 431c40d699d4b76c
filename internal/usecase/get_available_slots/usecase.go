package get_available_slots

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UseCase computes bookable slots for a service on a day
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      *domain.Catalog
	calendar     Calendar
	calculator   SlotCalculator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog *domain.Catalog,
	calendar Calendar,
	calculator SlotCalculator,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		calendar:     calendar,
		calculator:   calculator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider replaces the clock
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute returns the free slots of the requested day
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: date=%s, service=%s, employee=%q", req.Date, req.ServiceID, req.EmployeeID)

	date, err := uc.calendar.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	// 2. Resolve the service
	service, ok := uc.catalog.Service(req.ServiceID)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: service %q not found", req.ServiceID)
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, req.ServiceID)
	}

	// 3. Resolve employees
	employeeIDs, err := resolveEmployees(uc.catalog, req.EmployeeID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: employee %q not found", req.EmployeeID)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 4. One read for every employee of the day
	dayStart, dayEnd := uc.calendar.DayBounds(date)
	bookings, err := uc.bookingRepo.ListActive(ctx, dayStart, dayEnd, employeeIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	byEmployee := make(map[string][]*domain.Booking, len(employeeIDs))
	for _, b := range bookings {
		byEmployee[b.EmployeeID] = append(byEmployee[b.EmployeeID], b)
	}

	// 5. Compute per employee, in catalog order
	slots := make([]Slot, 0)
	for _, employeeID := range employeeIDs {
		for _, s := range uc.calculator.ComputeSlots(date, service, employeeID, byEmployee[employeeID], now) {
			slots = append(slots, Slot{
				EmployeeID: s.EmployeeID,
				Start:      s.Start,
				End:        s.End,
			})
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%s, employees=%d, date=%s",
		len(slots), service.ID, len(employeeIDs), date.Format(domain.DateFormat))

	return &Response{
		Date:      date,
		ServiceID: service.ID,
		Slots:     slots,
	}, nil
}
