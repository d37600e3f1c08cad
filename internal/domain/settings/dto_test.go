package settings

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() ReplaceSettingsRequest {
	return ReplaceSettingsRequest{
		SBU:         "470.00",
		IESSRate:    "0.0945",
		ReserveRate: "0.0833",
		Schedule: ScheduleRequest{
			Weekday:    ShiftRequest{Start: "08:00", End: "17:00"},
			Saturday:   ShiftRequest{Start: "08:00", End: "12:00"},
			HalfDayOff: HalfDayOffRequest{Weekday: "Saturday", Start: "12:00", End: "17:00"},
		},
	}
}

func TestReplaceSettingsRequest_Validate(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())

	bad := validRequest()
	bad.SBU = "0"
	bad.IESSRate = "1"
	bad.ReserveRate = "-0.1"
	bad.Schedule.Weekday = ShiftRequest{Start: "17:00", End: "08:00"}
	bad.Schedule.HalfDayOff.Weekday = "someday"

	err := bad.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "sbu")
	assert.Contains(t, fields, "iess_rate")
	assert.Contains(t, fields, "reserve_rate")
	assert.Contains(t, fields, "schedule.weekday")
	assert.Contains(t, fields, "schedule.half_day_off.weekday")
}

func TestReplaceSettingsRequest_ToSettings(t *testing.T) {
	req := validRequest()
	req.UpdatedBy = "admin-1"

	s := req.ToSettings()
	assert.Equal(t, "470", s.SBU.String())
	assert.Equal(t, NewClockTime(8, 0), s.Schedule.Weekday.Start)
	assert.Equal(t, time.Saturday, s.Schedule.HalfDayOff.Weekday)
	require.NotNil(t, s.UpdatedBy)
	assert.Equal(t, "admin-1", *s.UpdatedBy)

	resp := NewSettingsResponse(s)
	assert.Equal(t, "470.00", resp.SBU)
	assert.Equal(t, "saturday", resp.Schedule.HalfDayOff.Weekday)
	assert.Nil(t, resp.UpdatedAt)
}
