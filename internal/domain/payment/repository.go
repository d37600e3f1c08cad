package payment

import "context"

// PaymentRepository is read-only: payments are written by treasury
// operations outside this service.
type PaymentRepository interface {
	List(ctx context.Context, filter PaymentFilter) ([]Payment, error)
}
