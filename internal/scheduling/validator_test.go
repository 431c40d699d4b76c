package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestValidator_Validate(t *testing.T) {
	loc := madrid(t)
	v := NewValidator(defaultCalendar(t))
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, loc)

	existing := []*domain.Booking{activeBooking("david",
		time.Date(2025, 3, 10, 10, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 10, 30, 0, 0, loc))}

	tests := []struct {
		name    string
		start   time.Time
		now     time.Time
		wantErr error
	}{
		{"free slot after booking", time.Date(2025, 3, 10, 10, 30, 0, 0, loc), now, nil},
		{"free slot before booking", time.Date(2025, 3, 10, 9, 30, 0, 0, loc), now, nil},
		{"overlapping", time.Date(2025, 3, 10, 10, 15, 0, 0, loc), now, ErrOverlap},
		{"crosses shift end", time.Date(2025, 3, 10, 12, 45, 0, 0, loc), now, ErrOutsideBusinessHours},
		{"during lunch", time.Date(2025, 3, 10, 14, 0, 0, 0, loc), now, ErrOutsideBusinessHours},
		{"last slot of the day", time.Date(2025, 3, 10, 19, 30, 0, 0, loc), now, nil},
		{"ended", time.Date(2025, 3, 10, 9, 0, 0, 0, loc), time.Date(2025, 3, 10, 9, 30, 0, 0, loc), ErrInPast},
		{"started but not ended", time.Date(2025, 3, 10, 9, 0, 0, 0, loc), time.Date(2025, 3, 10, 9, 29, 0, 0, loc), nil},
		{"hours before past", time.Date(2025, 3, 9, 12, 45, 0, 0, loc), time.Date(2025, 3, 10, 0, 0, 0, 0, loc), ErrOutsideBusinessHours},
		{"past before overlap", time.Date(2025, 3, 10, 10, 15, 0, 0, loc), time.Date(2025, 3, 11, 0, 0, 0, 0, loc), ErrInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, err := v.Validate(tt.start, haircut(), existing, tt.now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.Equal(t, 30*time.Minute, interval.Duration())
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidator_ErrorKinds(t *testing.T) {
	assert.ErrorIs(t, ErrOutsideBusinessHours, domain.ErrFailedPrecondition)
	assert.ErrorIs(t, ErrInPast, domain.ErrFailedPrecondition)
	assert.ErrorIs(t, ErrOverlap, domain.ErrConflict)
}

func TestValidator_NoOverlap_IgnoresCancelled(t *testing.T) {
	loc := madrid(t)
	v := NewValidator(defaultCalendar(t))

	b := activeBooking("david",
		time.Date(2025, 3, 10, 10, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 10, 30, 0, 0, loc))
	b.Status = domain.StatusCancelled

	err := v.NoOverlap(b.Interval(), []*domain.Booking{b})
	assert.NoError(t, err)
}
