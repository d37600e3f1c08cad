package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"08:30", NewClockTime(8, 30), false},
		{"00:00", 0, false},
		{"23:59", NewClockTime(23, 59), false},
		{"24:00", 0, true},
		{"8:30", 0, true},
		{"08:60", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClockTime(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClockTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestGlobalSettings_IsLate(t *testing.T) {
	s := Default()
	day := func(h, m, sec int) time.Time {
		return time.Date(2024, 3, 4, h, m, sec, 0, time.UTC)
	}

	assert.False(t, s.IsLate(day(8, 0, 0)), "early")
	assert.False(t, s.IsLate(day(8, 30, 0)), "on time")
	assert.False(t, s.IsLate(day(8, 45, 0)), "exactly fifteen minutes")
	assert.True(t, s.IsLate(day(8, 45, 1)), "one second past threshold")
	assert.True(t, s.IsLate(day(8, 47, 0)))
	assert.True(t, s.IsLate(day(14, 0, 0)))
}

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, "482.00", s.SBU.StringFixed(2))
	assert.Equal(t, "0.0945", s.IESSRate.String())
	assert.Equal(t, "0.0833", s.ReserveRate.String())
	assert.Equal(t, time.Saturday, s.Schedule.HalfDayOff.Weekday)
	assert.Equal(t, "08:30", s.Schedule.Weekday.Start.String())
}
