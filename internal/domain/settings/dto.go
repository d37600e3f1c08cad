package settings

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ShiftRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type HalfDayOffRequest struct {
	Weekday string `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type ScheduleRequest struct {
	Weekday    ShiftRequest      `json:"weekday"`
	Saturday   ShiftRequest      `json:"saturday"`
	HalfDayOff HalfDayOffRequest `json:"half_day_off"`
}

type ReplaceSettingsRequest struct {
	SBU         string          `json:"sbu"`
	IESSRate    string          `json:"iess_rate"`
	ReserveRate string          `json:"reserve_rate"`
	Schedule    ScheduleRequest `json:"schedule"`

	// Taken from the token, never from the body.
	UpdatedBy string `json:"-"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (r *ReplaceSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if sbu, err := decimal.NewFromString(r.SBU); err != nil || !sbu.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "sbu",
			Message: "sbu must be a positive decimal",
		})
	}
	errs = append(errs, validateRate("iess_rate", r.IESSRate)...)
	errs = append(errs, validateRate("reserve_rate", r.ReserveRate)...)

	errs = append(errs, validateShift("schedule.weekday", r.Schedule.Weekday.Start, r.Schedule.Weekday.End)...)
	errs = append(errs, validateShift("schedule.saturday", r.Schedule.Saturday.Start, r.Schedule.Saturday.End)...)
	errs = append(errs, validateShift("schedule.half_day_off", r.Schedule.HalfDayOff.Start, r.Schedule.HalfDayOff.End)...)

	if _, ok := weekdayNames[strings.ToLower(r.Schedule.HalfDayOff.Weekday)]; !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule.half_day_off.weekday",
			Message: "weekday must be a day name such as saturday",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateRate(field, value string) validator.ValidationErrors {
	rate, err := decimal.NewFromString(value)
	if err != nil || rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be a decimal in [0, 1)",
		}}
	}
	return nil
}

func validateShift(field, start, end string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	s, errStart := ParseClockTime(start)
	if errStart != nil {
		errs = append(errs, validator.ValidationError{Field: field + ".start", Message: "start must be HH:MM"})
	}
	e, errEnd := ParseClockTime(end)
	if errEnd != nil {
		errs = append(errs, validator.ValidationError{Field: field + ".end", Message: "end must be HH:MM"})
	}
	if errStart == nil && errEnd == nil && s >= e {
		errs = append(errs, validator.ValidationError{Field: field, Message: "start must be before end"})
	}
	return errs
}

// ToSettings converts a validated request into a settings document.
func (r *ReplaceSettingsRequest) ToSettings() GlobalSettings {
	shift := func(s ShiftRequest) Shift {
		start, _ := ParseClockTime(s.Start)
		end, _ := ParseClockTime(s.End)
		return Shift{Start: start, End: end}
	}
	offStart, _ := ParseClockTime(r.Schedule.HalfDayOff.Start)
	offEnd, _ := ParseClockTime(r.Schedule.HalfDayOff.End)

	out := GlobalSettings{
		SBU:         decimal.RequireFromString(r.SBU),
		IESSRate:    decimal.RequireFromString(r.IESSRate),
		ReserveRate: decimal.RequireFromString(r.ReserveRate),
		Schedule: Schedule{
			Weekday:  shift(r.Schedule.Weekday),
			Saturday: shift(r.Schedule.Saturday),
			HalfDayOff: HalfDayOff{
				Weekday: weekdayNames[strings.ToLower(r.Schedule.HalfDayOff.Weekday)],
				Start:   offStart,
				End:     offEnd,
			},
		},
	}
	if r.UpdatedBy != "" {
		by := r.UpdatedBy
		out.UpdatedBy = &by
	}
	return out
}

type SettingsResponse struct {
	SBU         string          `json:"sbu"`
	IESSRate    string          `json:"iess_rate"`
	ReserveRate string          `json:"reserve_rate"`
	Schedule    ScheduleRequest `json:"schedule"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
	UpdatedBy   *string         `json:"updated_by,omitempty"`
}

func NewSettingsResponse(s GlobalSettings) SettingsResponse {
	resp := SettingsResponse{
		SBU:         s.SBU.StringFixed(2),
		IESSRate:    s.IESSRate.String(),
		ReserveRate: s.ReserveRate.String(),
		Schedule: ScheduleRequest{
			Weekday:  ShiftRequest{Start: s.Schedule.Weekday.Start.String(), End: s.Schedule.Weekday.End.String()},
			Saturday: ShiftRequest{Start: s.Schedule.Saturday.Start.String(), End: s.Schedule.Saturday.End.String()},
			HalfDayOff: HalfDayOffRequest{
				Weekday: strings.ToLower(s.Schedule.HalfDayOff.Weekday.String()),
				Start:   s.Schedule.HalfDayOff.Start.String(),
				End:     s.Schedule.HalfDayOff.End.String(),
			},
		},
		UpdatedBy: s.UpdatedBy,
	}
	if !s.UpdatedAt.IsZero() {
		at := s.UpdatedAt
		resp.UpdatedAt = &at
	}
	return resp
}
