package payment

import (
	"context"
	"fmt"
	"sort"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payment"
)

type PaymentServiceImpl struct {
	payment.PaymentRepository
}

func NewPaymentService(paymentRepository payment.PaymentRepository) payment.PaymentService {
	return &PaymentServiceImpl{PaymentRepository: paymentRepository}
}

// ListPayments returns matching payments, newest first.
func (s *PaymentServiceImpl) ListPayments(ctx context.Context, filter payment.PaymentFilter) ([]payment.PaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	sort.SliceStable(payments, func(i, j int) bool {
		if !payments[i].Date.Equal(payments[j].Date) {
			return payments[i].Date.After(payments[j].Date)
		}
		return payments[i].ID < payments[j].ID
	})

	responses := make([]payment.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, payment.NewPaymentResponse(p))
	}
	return responses, nil
}
