package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Client mirrors bookings into a Google Calendar.
// A client built without a calendar id or credentials skips every sync.
type Client struct {
	events         *calendar.EventsService
	calendarID     string
	attendeeDomain string
	timeout        time.Duration
	loc            *time.Location
	log            Logger
	metrics        Metrics
}

// NewClient creates the calendar client. Extra options are appended after the
// credentials; passing any of them also enables a client that has no credentials.
func NewClient(ctx context.Context, cfg Config, loc *time.Location, log Logger, opts ...option.ClientOption) (*Client, error) {
	c := &Client{
		calendarID:     cfg.CalendarID,
		attendeeDomain: cfg.AttendeeDomain,
		timeout:        cfg.Timeout,
		loc:            loc,
		log:            log,
		metrics:        nopMetrics{},
	}
	if c.attendeeDomain == "" {
		c.attendeeDomain = domain.DefaultCalendarAttendeeDomain
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}

	var clientOpts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	if cfg.CalendarID == "" || len(clientOpts)+len(opts) == 0 {
		log.Warn("Google Calendar is not configured, calendar sync is disabled")
		return c, nil
	}

	clientOpts = append(clientOpts, option.WithScopes(calendar.CalendarScope))
	clientOpts = append(clientOpts, opts...)

	svc, err := calendar.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create calendar service: %v", ErrInternal, err)
	}
	c.events = svc.Events

	log.Info("Google Calendar sync enabled for calendar_id=%s", cfg.CalendarID)
	return c, nil
}

// WithMetrics enables sync outcome counters
func (c *Client) WithMetrics(m Metrics) *Client {
	if m != nil {
		c.metrics = m
	}
	return c
}

// Enabled reports whether the client talks to Google
func (c *Client) Enabled() bool {
	return c.events != nil
}

// Sync applies action to the calendar event of booking.
// create returns the new event id; delete returns "" and treats a missing event as deleted.
func (c *Client) Sync(ctx context.Context, action domain.SyncAction, booking *domain.Booking) (string, error) {
	if !c.Enabled() {
		c.metrics.IncCalendarSync(string(action), "skipped")
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		eventID string
		err     error
	)
	switch action {
	case domain.SyncActionCreate:
		eventID, err = c.createEvent(ctx, booking)
	case domain.SyncActionDelete:
		err = c.deleteEvent(ctx, booking)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if err != nil {
		c.metrics.IncCalendarSync(string(action), "error")
		return "", err
	}
	c.metrics.IncCalendarSync(string(action), "ok")
	return eventID, nil
}

func (c *Client) createEvent(ctx context.Context, booking *domain.Booking) (string, error) {
	c.log.Info("Creating calendar event for booking_id=%d", booking.ID)

	event, err := c.events.Insert(c.calendarID, eventFromBooking(booking, c.loc, c.attendeeDomain)).Context(ctx).Do()
	if err != nil {
		return "", classify(err)
	}
	if event == nil || event.Id == "" {
		return "", fmt.Errorf("%w: event id is empty", ErrInvalidResponse)
	}

	c.log.Info("Created calendar event_id=%s for booking_id=%d", event.Id, booking.ID)
	return event.Id, nil
}

func (c *Client) deleteEvent(ctx context.Context, booking *domain.Booking) error {
	if !booking.HasExternalEvent() {
		return nil
	}
	eventID := *booking.ExternalCalendarEventID

	c.log.Info("Deleting calendar event_id=%s for booking_id=%d", eventID, booking.ID)

	if err := c.events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			c.log.Info("Calendar event_id=%s is already gone", eventID)
			return nil
		}
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
}
