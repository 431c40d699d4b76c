package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error
	got  *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_ReturnsSlots(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, loc)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:      time.Date(2025, 3, 3, 0, 0, 0, 0, loc),
		ServiceID: "haircut",
		Slots: []getAvailableSlots.Slot{
			{EmployeeID: "david", Start: start, End: start.Add(30 * time.Minute)},
		},
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/available-slots?date=2025-03-03&serviceId=haircut&employeeId=david", nil)
	NewHandler(uc, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &getAvailableSlots.Request{Date: "2025-03-03", ServiceID: "haircut", EmployeeID: "david"}, uc.got)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-03", body.Date)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, AvailableSlot{EmployeeID: "david", Start: "2025-03-03T09:00:00+01:00", End: "2025-03-03T09:30:00+01:00"}, body.Slots[0])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{name: "missing date", query: "serviceId=haircut", status: http.StatusBadRequest},
		{name: "missing service", query: "date=2025-03-03", status: http.StatusBadRequest},
		{name: "bad date", query: "date=03-03-2025&serviceId=haircut", err: getAvailableSlots.ErrInvalidDate, status: http.StatusBadRequest},
		{name: "unknown service", query: "date=2025-03-03&serviceId=x", err: getAvailableSlots.ErrServiceNotFound, status: http.StatusBadRequest},
		{name: "unknown employee", query: "date=2025-03-03&serviceId=haircut&employeeId=x", err: getAvailableSlots.ErrEmployeeNotFound, status: http.StatusBadRequest},
		{
			name:   "store down",
			query:  "date=2025-03-03&serviceId=haircut",
			err:    fmt.Errorf("%w: db", getAvailableSlots.ErrInternal),
			status: http.StatusServiceUnavailable,
		},
		{name: "unexpected", query: "date=2025-03-03&serviceId=haircut", err: fmt.Errorf("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/available-slots?"+tt.query, nil)

			NewHandler(uc, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
