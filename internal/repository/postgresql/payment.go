package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
)

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepository{db: db}
}

// List implements payment.PaymentRepository.
func (r *paymentRepository) List(ctx context.Context, filter payment.PaymentFilter) ([]payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.EmployeeID != nil {
		add("employee_id", *filter.EmployeeID)
	}
	if filter.Month != nil {
		add("month", *filter.Month)
	}
	if filter.Year != nil {
		add("year", *filter.Year)
	}
	if filter.Type != nil {
		add("type", *filter.Type)
	}
	if filter.Status != nil {
		add("status", *filter.Status)
	}

	query := `
		SELECT id, employee_id, amount, month, year, date, type, status, description, created_at
		FROM payments
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]payment.Payment, 0)
	for rows.Next() {
		var p payment.Payment
		var paymentType, status string
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.Amount, &p.Month, &p.Year, &p.Date,
			&paymentType, &status, &p.Description, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Type = payment.Type(paymentType)
		p.Status = payment.Status(status)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
