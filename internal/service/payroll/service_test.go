package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSettings struct{ s settings.GlobalSettings }

func (p staticSettings) Current() settings.GlobalSettings { return p.s }

func newPayrollService(t *testing.T) payroll.PayrollService {
	t.Helper()

	ana := baseEmployee()
	carlos := baseEmployee()
	carlos.ID, carlos.FullName = "e2", "Carlos"
	carlos.IsAffiliated, carlos.OverSalaryType = false, employee.OverSalaryNone
	carlos.Salary = dec("600")
	gone := baseEmployee()
	gone.ID, gone.FullName, gone.Status = "e3", "Beatriz", employee.StatusTerminated

	employees := memory.NewEmployeeRepository(carlos, ana, gone)
	payments := memory.NewPaymentRepository(
		payment.Payment{ID: "p1", EmployeeID: "e2", Type: payment.TypeLoan, Amount: dec("100"), Month: 3, Year: 2024, Status: payment.StatusPaid, Date: time.Now()},
		payment.Payment{ID: "p2", EmployeeID: "e1", Type: payment.TypeBonus, Amount: dec("-10"), Month: 3, Year: 2024, Status: payment.StatusPaid, Date: time.Now()},
	)

	return NewPayrollService(employees, payments, staticSettings{settings.Default()}, NewCalculator())
}

func TestPreviewPayroll(t *testing.T) {
	svc := newPayrollService(t)

	resp, err := svc.PreviewPayroll(context.Background(), payroll.PreviewPayrollRequest{EmployeeID: "e2", Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "600.00", resp.TotalIncome)
	assert.Equal(t, "100.00", resp.Loans)
	assert.Equal(t, "0.00", resp.IESS)
	assert.Equal(t, "500.00", resp.NetToReceive)

	_, err = svc.PreviewPayroll(context.Background(), payroll.PreviewPayrollRequest{EmployeeID: "nobody", Month: 3, Year: 2024})
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)

	_, err = svc.PreviewPayroll(context.Background(), payroll.PreviewPayrollRequest{EmployeeID: "e2", Month: 13, Year: 2024})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestGeneratePeriodPayroll(t *testing.T) {
	svc := newPayrollService(t)

	resp, err := svc.GeneratePeriodPayroll(context.Background(), payroll.PeriodPayrollRequest{Month: 3, Year: 2024})
	require.NoError(t, err)

	require.Equal(t, 2, resp.TotalCount, "terminated employees are excluded")
	assert.Equal(t, "Ana", resp.Employees[0].EmployeeName)
	assert.Equal(t, "Carlos", resp.Employees[1].EmployeeName)
	assert.Equal(t, "10.00", resp.Employees[0].Penalties)

	// 602.4839333... + 600 and 55.549 + 100, rounded once
	assert.Equal(t, "1202.48", resp.Totals.TotalIncome)
	assert.Equal(t, "155.55", resp.Totals.TotalExpenses)
	assert.Equal(t, "1046.93", resp.Totals.NetToReceive)
}
