package payment

import "context"

type PaymentService interface {
	ListPayments(ctx context.Context, filter PaymentFilter) ([]PaymentResponse, error)
}
