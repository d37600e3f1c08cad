package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a ledger entry of money disbursed or withheld. Month and Year
// name the payroll period the entry applies to, independent of Date.
type Payment struct {
	ID          string
	EmployeeID  string
	Amount      decimal.Decimal // negative Bonus entries are penalties
	Month       int
	Year        int
	Date        time.Time
	Type        Type
	Status      Status
	Description *string
	CreatedAt   time.Time
}

type Type string

const (
	TypeSalary     Type = "Salary"
	TypeLoan       Type = "Loan"
	TypeBonus      Type = "Bonus"
	TypeSettlement Type = "Settlement"
	TypeEmergency  Type = "Emergency"
	TypeThirteenth Type = "Thirteenth"
	TypeFourteenth Type = "Fourteenth"
	TypeVacation   Type = "Vacation"
)

var TypeValues = []string{
	string(TypeSalary),
	string(TypeLoan),
	string(TypeBonus),
	string(TypeSettlement),
	string(TypeEmergency),
	string(TypeThirteenth),
	string(TypeFourteenth),
	string(TypeVacation),
}

type Status string

const (
	StatusPaid Status = "paid"
	StatusVoid Status = "void"
)

// InPeriod reports whether the entry is a paid entry for the given period.
func (p Payment) InPeriod(month, year int) bool {
	return p.Status == StatusPaid && p.Month == month && p.Year == year
}
