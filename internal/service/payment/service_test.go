package payment

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() *memory.PaymentRepository {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	return memory.NewPaymentRepository(
		payment.Payment{ID: "p1", EmployeeID: "e1", Amount: decimal.RequireFromString("100"), Month: 3, Year: 2024, Date: day(2), Type: payment.TypeLoan, Status: payment.StatusPaid},
		payment.Payment{ID: "p2", EmployeeID: "e1", Amount: decimal.RequireFromString("482"), Month: 3, Year: 2024, Date: day(28), Type: payment.TypeSalary, Status: payment.StatusPaid},
		payment.Payment{ID: "p3", EmployeeID: "e2", Amount: decimal.RequireFromString("-15.5"), Month: 3, Year: 2024, Date: day(10), Type: payment.TypeBonus, Status: payment.StatusVoid},
		payment.Payment{ID: "p4", EmployeeID: "e1", Amount: decimal.RequireFromString("50"), Month: 2, Year: 2024, Date: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), Type: payment.TypeLoan, Status: payment.StatusPaid},
	)
}

func TestListPayments_FiltersAndOrders(t *testing.T) {
	svc := NewPaymentService(seed())
	employeeID, month, year := "e1", 3, 2024

	got, err := svc.ListPayments(context.Background(), payment.PaymentFilter{
		EmployeeID: &employeeID,
		Month:      &month,
		Year:       &year,
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, "482.00", got[0].Amount)
	assert.Equal(t, "2024-03-28", got[0].Date)
	assert.Equal(t, "p1", got[1].ID)
}

func TestListPayments_ByStatus(t *testing.T) {
	svc := NewPaymentService(seed())
	status := "void"

	got, err := svc.ListPayments(context.Background(), payment.PaymentFilter{Status: &status})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "-15.50", got[0].Amount)
}

func TestListPayments_InvalidFilter(t *testing.T) {
	svc := NewPaymentService(seed())
	month, kind := 13, "gift"

	_, err := svc.ListPayments(context.Background(), payment.PaymentFilter{Month: &month, Type: &kind})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")
	assert.Contains(t, verrs.ToMap(), "type")
}

func TestListPayments_Empty(t *testing.T) {
	svc := NewPaymentService(memory.NewPaymentRepository())

	got, err := svc.ListPayments(context.Background(), payment.PaymentFilter{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
