package payment

import (
	"strings"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

type PaymentFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Type       *string `json:"type,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (f *PaymentFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && !validator.IsValidMonth(*f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Year != nil && (*f.Year < 2000 || *f.Year > 2100) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if f.Type != nil && !validator.IsInSlice(*f.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}
	if f.Status != nil && *f.Status != string(StatusPaid) && *f.Status != string(StatusVoid) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: paid, void",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Amount      string  `json:"amount"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Description *string `json:"description,omitempty"`
}

func NewPaymentResponse(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Amount:      p.Amount.StringFixed(2),
		Month:       p.Month,
		Year:        p.Year,
		Date:        p.Date.Format("2006-01-02"),
		Type:        string(p.Type),
		Status:      string(p.Status),
		Description: p.Description,
	}
}
