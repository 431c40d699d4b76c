package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

// SQLSTATE codes the repository translates into its own errors
const (
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

var bookingColumns = []string{
	"id",
	"client_name",
	"phone",
	"service_id",
	"service_name",
	"duration_minutes",
	"employee_id",
	"start_time",
	"end_time",
	"status",
	"external_calendar_event_id",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository stores bookings in PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive returns active bookings of the given employees whose start lies in [from, to),
// ordered by employee and start time.
// Inside a transaction the rows are locked FOR UPDATE so concurrent admissions for the
// same employee and day serialize on them.
func (r *Repository) ListActive(ctx context.Context, from, to time.Time, employeeIDs []string) ([]*domain.Booking, error) {
	if len(employeeIDs) == 0 {
		return []*domain.Booking{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Eq{"employee_id": employeeIDs}).
		OrderBy("employee_id ASC", "start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "ListActive - execute query")
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Create inserts an active booking and fills in its id and timestamps
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"client_name",
			"phone",
			"service_id",
			"service_name",
			"duration_minutes",
			"employee_id",
			"start_time",
			"end_time",
			"status",
			"external_calendar_event_id",
		).
		Values(
			booking.ClientName,
			booking.Phone,
			booking.ServiceID,
			booking.ServiceName,
			booking.DurationMinutes,
			booking.EmployeeID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.ExternalCalendarEventID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, classify(err, "Create - execute insert")
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID returns the booking with the given id
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Update applies the non-nil fields of update.
// Moving to the cancelled status also stamps cancelled_at.
func (r *Repository) Update(ctx context.Context, id int64, update domain.BookingUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableBookings).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.Status != nil {
		updateBuilder = updateBuilder.Set("status", *update.Status)
		if *update.Status == domain.StatusCancelled {
			updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
		}
	}
	if update.ExternalCalendarEventID != nil {
		updateBuilder = updateBuilder.Set("external_calendar_event_id", *update.ExternalCalendarEventID)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err, "Update - execute update")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// List returns bookings whose start lies in [filter.From, filter.To), ordered by start time
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.GtOrEq{"start_time": filter.From}).
		Where(squirrel.Lt{"start_time": filter.To})

	// Empty list means all employees
	if len(filter.EmployeeIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": filter.EmployeeIDs})
	}

	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusActive})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "employee_id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "List - execute query")
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ClientName,
		&booking.Phone,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.DurationMinutes,
		&booking.EmployeeID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.ExternalCalendarEventID,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if !booking.Status.IsValid() {
		return nil, fmt.Errorf("unknown status %q for booking id=%d", booking.Status, booking.ID)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings reads all rows into bookings
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err, "scanBookings - rows error")
	}

	return bookings, nil
}

// classify maps PostgreSQL errors the callers act on to repository sentinels
func classify(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgExclusionViolation:
			return fmt.Errorf("%w: %s: %v", ErrSlotNotAvailable, op, err)
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %s: %v", ErrConcurrentUpdate, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
