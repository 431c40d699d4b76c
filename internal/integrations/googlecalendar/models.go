package googlecalendar

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Config holds the calendar settings
type Config struct {
	CalendarID      string
	CredentialsJSON string
	CredentialsFile string
	AttendeeDomain  string        // employees are invited as <employee id>@<domain>
	Timeout         time.Duration // per request
}

// Logger is the logging surface the client needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics counts sync outcomes
type Metrics interface {
	IncCalendarSync(action, outcome string)
}

type nopMetrics struct{}

func (nopMetrics) IncCalendarSync(string, string) {}

// eventFromBooking builds the calendar event mirroring a booking
func eventFromBooking(b *domain.Booking, loc *time.Location, attendeeDomain string) *calendar.Event {
	zone := loc.String()
	return &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s", b.ServiceName, b.ClientName),
		Description: fmt.Sprintf("Teléfono: %s", b.Phone),
		Start: &calendar.EventDateTime{
			DateTime: b.StartTime.In(loc).Format(time.RFC3339),
			TimeZone: zone,
		},
		End: &calendar.EventDateTime{
			DateTime: b.EndTime.In(loc).Format(time.RFC3339),
			TimeZone: zone,
		},
		Attendees: []*calendar.EventAttendee{
			{
				Email:       fmt.Sprintf("%s@%s", b.EmployeeID, attendeeDomain),
				DisplayName: b.EmployeeID,
			},
		},
	}
}
