package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// phonePattern is E.164: a plus sign, a non-zero digit and at most 15 digits in total
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{0,14}$`)

// localStartLayouts are accepted when the start carries no zone offset
var localStartLayouts = []string{
	"2006-01-02T15:04:05",
	domain.LocalDateTimeFormat,
}

// bookingInput is a request that passed argument checks
type bookingInput struct {
	clientName string
	phone      string
	service    domain.Service
	employee   domain.Employee
	start      time.Time
}

// validateRequest checks argument shape and resolves catalog references
func validateRequest(req *Request, catalog *domain.Catalog, loc *time.Location) (*bookingInput, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidClientName)
	}
	if len([]rune(name)) > domain.MaxClientNameLength {
		return nil, fmt.Errorf("%w: longer than %d characters", ErrInvalidClientName, domain.MaxClientNameLength)
	}

	// Stored as sent, so surrounding whitespace is a format error
	if !phonePattern.MatchString(req.Phone) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPhone, req.Phone)
	}

	service, ok := catalog.Service(req.ServiceID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, req.ServiceID)
	}

	employee, ok := catalog.Employee(req.EmployeeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEmployeeNotFound, req.EmployeeID)
	}

	start, err := parseStart(req.Start, loc)
	if err != nil {
		return nil, err
	}

	return &bookingInput{
		clientName: name,
		phone:      req.Phone,
		service:    service,
		employee:   employee,
		start:      start,
	}, nil
}

// parseStart accepts an RFC 3339 instant or a local date-time in loc
func parseStart(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: start is required", ErrInvalidStartTime)
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}

	for _, layout := range localStartLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStartTime, value)
}
