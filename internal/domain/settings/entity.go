package settings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime parses an "HH:MM" value.
func ParseClockTime(s string) (ClockTime, error) {
	if !validator.IsValidClock(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return NewClockTime(h, m), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Since returns how far the wall-clock time of t is past c on the same day.
// Negative when t is earlier than c.
func (c ClockTime) Since(t time.Time) time.Duration {
	h, m, s := t.Clock()
	elapsed := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
	return elapsed - time.Duration(c)*time.Minute
}

type Shift struct {
	Start ClockTime
	End   ClockTime
}

// HalfDayOff is the recurring weekly window employees may take off.
type HalfDayOff struct {
	Weekday time.Weekday
	Start   ClockTime
	End     ClockTime
}

type Schedule struct {
	Weekday    Shift
	Saturday   Shift
	HalfDayOff HalfDayOff
}

// GlobalSettings is the single authoritative configuration document.
// It is replaced wholesale and passed by value.
type GlobalSettings struct {
	SBU         decimal.Decimal
	IESSRate    decimal.Decimal
	ReserveRate decimal.Decimal
	Schedule    Schedule
	UpdatedAt   time.Time
	UpdatedBy   *string
}

// LateThreshold is the grace period after the weekday start before an
// "in" mark counts as late.
const LateThreshold = 15 * time.Minute

// IsLate reports whether an "in" mark at t is late against the weekday start.
func (s GlobalSettings) IsLate(t time.Time) bool {
	return s.Schedule.Weekday.Start.Since(t) > LateThreshold
}

// Default returns the settings used until an administrator stores a document.
func Default() GlobalSettings {
	return GlobalSettings{
		SBU:         decimal.RequireFromString("482.00"),
		IESSRate:    decimal.RequireFromString("0.0945"),
		ReserveRate: decimal.RequireFromString("0.0833"),
		Schedule: Schedule{
			Weekday:  Shift{Start: NewClockTime(8, 30), End: NewClockTime(17, 30)},
			Saturday: Shift{Start: NewClockTime(8, 30), End: NewClockTime(13, 0)},
			HalfDayOff: HalfDayOff{
				Weekday: time.Saturday,
				Start:   NewClockTime(13, 0),
				End:     NewClockTime(17, 30),
			},
		},
	}
}
