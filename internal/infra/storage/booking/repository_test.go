package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), db, mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

var (
	start = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end   = start.Add(30 * time.Minute)
	stamp = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

func TestRepository_ListActive(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE status = \$1 AND start_time >= \$2 AND start_time < \$3 AND employee_id IN \(\$4,\$5\) ORDER BY employee_id ASC, start_time ASC$`).
		WithArgs(domain.StatusActive, start, end, "david", "marta").
		WillReturnRows(bookingRows().
			AddRow(1, "Ana", "+34600111222", "haircut", "Corte Pelo", 30, "david", start, end, "active", nil, nil, stamp, stamp).
			AddRow(2, "Luis", "+34600111333", "ear", "Depilación Oreja", 5, "marta", start, start.Add(5*time.Minute), "active", "evt-2", nil, stamp, stamp))

	bookings, err := repo.ListActive(context.Background(), start, end, []string{"david", "marta"})

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(1), bookings[0].ID)
	assert.Equal(t, domain.StatusActive, bookings[0].Status)
	assert.Nil(t, bookings[0].ExternalCalendarEventID)
	assert.Equal(t, "evt-2", ptr.Value(bookings[1].ExternalCalendarEventID))
	assert.True(t, bookings[1].EndTime.Equal(start.Add(5*time.Minute)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListActive_LocksInsideTransaction(t *testing.T) {
	_, db, mock := newRepo(t)
	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE (.+) FOR UPDATE$`).
		WillReturnRows(bookingRows())
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	ctx := dbmetrics.WithTx(context.Background(), tx)
	bookings, err := repo.ListActive(ctx, start, end, []string{"david"})
	require.NoError(t, err)
	assert.Empty(t, bookings)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListActive_NoEmployees(t *testing.T) {
	repo, _, mock := newRepo(t)

	bookings, err := repo.ListActive(context.Background(), start, end, nil)

	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListActive_SerializationFailure(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM bookings`).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.ListActive(context.Background(), start, end, []string{"david"})

	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings \(client_name,phone,service_id,service_name,duration_minutes,employee_id,start_time,end_time,status,external_calendar_event_id\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9,\$10\) RETURNING id, created_at, updated_at`).
		WithArgs("Ana", "+34600111222", "haircut", "Corte Pelo", 30, "david", start, end, domain.StatusActive, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, stamp, stamp))

	created, err := repo.Create(context.Background(), &domain.Booking{
		ClientName:      "Ana",
		Phone:           "+34600111222",
		ServiceID:       "haircut",
		ServiceName:     "Corte Pelo",
		DurationMinutes: 30,
		EmployeeID:      "david",
		StartTime:       start,
		EndTime:         end,
		Status:          domain.StatusActive,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.True(t, created.CreatedAt.Equal(stamp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})

	_, err := repo.Create(context.Background(), &domain.Booking{Status: domain.StatusActive})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestRepository_Create_OtherError(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Booking{Status: domain.StatusActive})

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotNotAvailable)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepo(t)
	cancelledAt := stamp.Add(time.Hour)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "Ana", "+34600111222", "haircut", "Corte Pelo", 30, "david", start, end, "cancelled", "evt-5", cancelledAt, stamp, cancelledAt))

	b, err := repo.GetByID(context.Background(), 5)

	require.NoError(t, err)
	assert.True(t, b.IsCancelled())
	require.NotNil(t, b.CancelledAt)
	assert.True(t, b.CancelledAt.Equal(cancelledAt))
	assert.Equal(t, "evt-5", ptr.Value(b.ExternalCalendarEventID))
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(bookingRows())

	_, err := repo.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByID_UnknownStatus(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
		WithArgs(int64(6)).
		WillReturnRows(bookingRows().
			AddRow(6, "Ana", "+34600111222", "haircut", "Corte Pelo", 30, "david", start, end, "pending", nil, nil, stamp, stamp))

	_, err := repo.GetByID(context.Background(), 6)

	assert.ErrorIs(t, err, ErrScanRow)
	assert.Contains(t, err.Error(), `unknown status "pending"`)
}

func TestRepository_Update_Cancel(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET updated_at = NOW\(\), status = \$1, cancelled_at = NOW\(\) WHERE id = \$2`).
		WithArgs(domain.StatusCancelled, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 5, domain.BookingUpdate{Status: ptr.Ptr(domain.StatusCancelled)})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_ExternalID(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET updated_at = NOW\(\), external_calendar_event_id = \$1 WHERE id = \$2`).
		WithArgs("evt-9", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 9, domain.BookingUpdate{ExternalCalendarEventID: ptr.Ptr("evt-9")})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 5, domain.BookingUpdate{Status: ptr.Ptr(domain.StatusCancelled)})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_Update_Empty(t *testing.T) {
	repo, _, mock := newRepo(t)

	err := repo.Update(context.Background(), 5, domain.BookingUpdate{})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, _, mock := newRepo(t)
	to := start.AddDate(0, 0, 1)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE start_time >= \$1 AND start_time < \$2 AND employee_id IN \(\$3\) ORDER BY start_time ASC, employee_id ASC$`).
		WithArgs(start, to, "marta").
		WillReturnRows(bookingRows().
			AddRow(3, "Eva", "+34600111444", "dye", "Tinte", 35, "marta", start, start.Add(35*time.Minute), "cancelled", nil, stamp, stamp, stamp))

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{
		From:             start,
		To:               to,
		EmployeeIDs:      []string{"marta"},
		IncludeCancelled: true,
	})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.True(t, bookings[0].IsCancelled())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ActiveOnly(t *testing.T) {
	repo, _, mock := newRepo(t)
	to := start.AddDate(0, 0, 1)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE start_time >= \$1 AND start_time < \$2 AND status = \$3 ORDER BY`).
		WithArgs(start, to, domain.StatusActive).
		WillReturnRows(bookingRows())

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{From: start, To: to})

	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}
