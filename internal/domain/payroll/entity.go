package payroll

import (
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// Input is everything the engine needs for one employee and period.
type Input struct {
	Employee employee.Employee
	Settings settings.GlobalSettings
	Payments []payment.Payment
	Month    int
	Year     int
	// EvaluatedAt drives tenure. Zero means the last day of the period.
	EvaluatedAt time.Time
}

// Breakdown holds unrounded figures. Round only when presenting.
type Breakdown struct {
	EmployeeID string
	Month      int
	Year       int

	Salary        decimal.Decimal
	ReserveFund   decimal.Decimal
	Thirteenth    decimal.Decimal
	Fourteenth    decimal.Decimal
	TotalIncome   decimal.Decimal
	IESS          decimal.Decimal
	Loans         decimal.Decimal
	Penalties     decimal.Decimal
	TotalExpenses decimal.Decimal
	NetToReceive  decimal.Decimal

	TenureYears int

	// DTO
	EmployeeName string
}

// PeriodEnd returns the last calendar day of month/year in loc.
func PeriodEnd(month, year int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, loc)
}
