package payroll

import (
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PreviewPayrollRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *PreviewPayrollRequest) Validate() error {
	errs := validatePeriod(r.Month, r.Year)
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodPayrollRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PeriodPayrollRequest) Validate() error {
	if errs := validatePeriod(r.Month, r.Year); len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePeriod(month, year int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if year < 2000 || year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	return errs
}

// BreakdownResponse renders every monetary figure with two decimals.
type BreakdownResponse struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	TenureYears   int    `json:"tenure_years"`
	Salary        string `json:"salary"`
	ReserveFund   string `json:"reserve_fund"`
	Thirteenth    string `json:"thirteenth"`
	Fourteenth    string `json:"fourteenth"`
	TotalIncome   string `json:"total_income"`
	IESS          string `json:"iess_contribution"`
	Loans         string `json:"loans"`
	Penalties     string `json:"penalties"`
	TotalExpenses string `json:"total_expenses"`
	NetToReceive  string `json:"net_to_receive"`
}

func NewBreakdownResponse(b Breakdown) BreakdownResponse {
	return BreakdownResponse{
		EmployeeID:    b.EmployeeID,
		EmployeeName:  b.EmployeeName,
		Month:         b.Month,
		Year:          b.Year,
		TenureYears:   b.TenureYears,
		Salary:        b.Salary.StringFixed(2),
		ReserveFund:   b.ReserveFund.StringFixed(2),
		Thirteenth:    b.Thirteenth.StringFixed(2),
		Fourteenth:    b.Fourteenth.StringFixed(2),
		TotalIncome:   b.TotalIncome.StringFixed(2),
		IESS:          b.IESS.StringFixed(2),
		Loans:         b.Loans.StringFixed(2),
		Penalties:     b.Penalties.StringFixed(2),
		TotalExpenses: b.TotalExpenses.StringFixed(2),
		NetToReceive:  b.NetToReceive.StringFixed(2),
	}
}

type PeriodTotals struct {
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	NetToReceive  string `json:"net_to_receive"`
}

type PeriodPayrollResponse struct {
	Month      int                 `json:"month"`
	Year       int                 `json:"year"`
	Employees  []BreakdownResponse `json:"employees"`
	Totals     PeriodTotals        `json:"totals"`
	TotalCount int                 `json:"total_count"`
}

// SumTotals adds unrounded breakdowns and rounds the result once.
func SumTotals(items []Breakdown) PeriodTotals {
	income, expenses, net := decimal.Zero, decimal.Zero, decimal.Zero
	for _, b := range items {
		income = income.Add(b.TotalIncome)
		expenses = expenses.Add(b.TotalExpenses)
		net = net.Add(b.NetToReceive)
	}
	return PeriodTotals{
		TotalIncome:   income.StringFixed(2),
		TotalExpenses: expenses.StringFixed(2),
		NetToReceive:  net.StringFixed(2),
	}
}
