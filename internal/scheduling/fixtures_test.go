package scheduling

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func madrid(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	return loc
}

func defaultCalendar(t *testing.T) *ShiftCalendar {
	t.Helper()
	cal, err := NewShiftCalendar([]domain.ShiftWindow{
		{Start: "16:00", End: "20:00"},
		{Start: "09:00", End: "13:00"},
	}, madrid(t))
	require.NoError(t, err)
	return cal
}

func haircut() domain.Service {
	return domain.Service{ID: "haircut", Name: "Corte Pelo", DurationMinutes: 30, Price: 18}
}

func activeBooking(employeeID string, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		EmployeeID: employeeID,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.StatusActive,
	}
}
