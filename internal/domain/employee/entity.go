package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                string
	FullName          string
	PIN               string
	PINChanged        bool
	PINNeedsReset     bool
	Salary            decimal.Decimal
	IsFixed           bool
	IsAffiliated      bool
	OverSalaryType    OverSalaryType
	StartDate         time.Time
	BirthDate         *time.Time
	Status            Status
	TerminationDate   *time.Time
	TerminationReason *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OverSalaryType controls how the 13th and 14th salaries are disbursed.
type OverSalaryType string

const (
	OverSalaryMonthly    OverSalaryType = "monthly"    // Mensualized with every payroll
	OverSalaryAccumulate OverSalaryType = "accumulate" // Paid as a lump sum on the legal due date
	OverSalaryNone       OverSalaryType = "none"
)

var OverSalaryTypeValues = []string{
	string(OverSalaryMonthly),
	string(OverSalaryAccumulate),
	string(OverSalaryNone),
}

type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
	StatusArchived   Status = "archived"
)

var StatusValues = []string{
	string(StatusActive),
	string(StatusTerminated),
	string(StatusArchived),
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

// RequiresPINChange reports whether the kiosk must force a PIN rotation
// before the employee can mark attendance.
func (e Employee) RequiresPINChange() bool {
	return !e.PINChanged || e.PINNeedsReset
}

// TenureYears returns the whole calendar years between StartDate and at.
func (e Employee) TenureYears(at time.Time) int {
	if e.StartDate.IsZero() || at.Before(e.StartDate) {
		return 0
	}
	years := at.Year() - e.StartDate.Year()
	if at.Month() < e.StartDate.Month() ||
		(at.Month() == e.StartDate.Month() && at.Day() < e.StartDate.Day()) {
		years--
	}
	return years
}

// IsBirthday compares the civil month and day of the birth date with t,
// where t is already expressed in the kiosk's location.
func (e Employee) IsBirthday(t time.Time) bool {
	if e.BirthDate == nil {
		return false
	}
	return e.BirthDate.Month() == t.Month() && e.BirthDate.Day() == t.Day()
}
