package payroll

import (
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// Calculator applies the Ecuadorian payroll rules. It holds no state and
// never fails: missing data counts as zero.
type Calculator struct {
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute implements payroll.Engine.
func (c *Calculator) Compute(in payroll.Input) payroll.Breakdown {
	emp := in.Employee
	evaluatedAt := in.EvaluatedAt
	if evaluatedAt.IsZero() && in.Month >= 1 && in.Month <= 12 {
		evaluatedAt = payroll.PeriodEnd(in.Month, in.Year, time.UTC)
	}

	b := payroll.Breakdown{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Month:        in.Month,
		Year:         in.Year,
		Salary:       emp.Salary,
		ReserveFund:  decimal.Zero,
		Thirteenth:   decimal.Zero,
		Fourteenth:   decimal.Zero,
		IESS:         decimal.Zero,
		TenureYears:  emp.TenureYears(evaluatedAt),
	}

	if emp.IsAffiliated {
		mensualized := emp.OverSalaryType == employee.OverSalaryMonthly

		if emp.IsFixed && b.TenureYears >= 1 && mensualized {
			b.ReserveFund = emp.Salary.Mul(in.Settings.ReserveRate)
		}
		if mensualized {
			b.Thirteenth = emp.Salary.Div(twelve)
			b.Fourteenth = in.Settings.SBU.Div(twelve)
		}
		b.IESS = emp.Salary.Mul(in.Settings.IESSRate)
	}

	b.Loans, b.Penalties = c.sumDeductions(in.Payments, in.Month, in.Year)

	b.TotalIncome = b.Salary.Add(b.ReserveFund).Add(b.Thirteenth).Add(b.Fourteenth)
	b.TotalExpenses = b.IESS.Add(b.Loans).Add(b.Penalties)
	b.NetToReceive = b.TotalIncome.Sub(b.TotalExpenses)

	return b
}

// sumDeductions totals paid loans and negative bonuses for the period.
func (c *Calculator) sumDeductions(payments []payment.Payment, month, year int) (loans, penalties decimal.Decimal) {
	loans, penalties = decimal.Zero, decimal.Zero
	for _, p := range payments {
		if !p.InPeriod(month, year) {
			continue
		}
		switch {
		case p.Type == payment.TypeLoan:
			loans = loans.Add(p.Amount)
		case p.Type == payment.TypeBonus && p.Amount.IsNegative():
			penalties = penalties.Add(p.Amount.Abs())
		}
	}
	return loans, penalties
}
