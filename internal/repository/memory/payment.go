package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payment"
)

type PaymentRepository struct {
	mu       sync.RWMutex
	payments []payment.Payment
}

func NewPaymentRepository(seed ...payment.Payment) *PaymentRepository {
	return &PaymentRepository{payments: append([]payment.Payment(nil), seed...)}
}

// Add appends ledger entries. Treasury writes happen outside the API.
func (r *PaymentRepository) Add(payments ...payment.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, payments...)
}

func (r *PaymentRepository) List(_ context.Context, filter payment.PaymentFilter) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]payment.Payment, 0)
	for _, p := range r.payments {
		if filter.EmployeeID != nil && p.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Month != nil && p.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && p.Year != *filter.Year {
			continue
		}
		if filter.Type != nil && string(p.Type) != *filter.Type {
			continue
		}
		if filter.Status != nil && string(p.Status) != *filter.Status {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}
