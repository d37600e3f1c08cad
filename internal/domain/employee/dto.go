package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName       string  `json:"full_name"`
	Salary         string  `json:"salary"`
	IsFixed        bool    `json:"is_fixed"`
	IsAffiliated   bool    `json:"is_affiliated"`
	OverSalaryType string  `json:"over_salary_type"`
	StartDate      string  `json:"start_date"`
	BirthDate      *string `json:"birth_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validateContract(r.FullName, r.Salary, r.IsAffiliated, r.OverSalaryType, r.StartDate, r.BirthDate)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReplaceEmployeeRequest struct {
	ID             string  `json:"-"`
	FullName       string  `json:"full_name"`
	Salary         string  `json:"salary"`
	IsFixed        bool    `json:"is_fixed"`
	IsAffiliated   bool    `json:"is_affiliated"`
	OverSalaryType string  `json:"over_salary_type"`
	StartDate      string  `json:"start_date"`
	BirthDate      *string `json:"birth_date,omitempty"`
}

func (r *ReplaceEmployeeRequest) Validate() error {
	errs := validateContract(r.FullName, r.Salary, r.IsAffiliated, r.OverSalaryType, r.StartDate, r.BirthDate)
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateContract(fullName, salary string, isAffiliated bool, overSalaryType, startDate string, birthDate *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(fullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if s, err := decimal.NewFromString(salary); err != nil || s.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must be a non-negative decimal",
		})
	}

	if !validator.IsInSlice(overSalaryType, OverSalaryTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "over_salary_type",
			Message: "over_salary_type must be one of: " + strings.Join(OverSalaryTypeValues, ", "),
		})
	} else if !isAffiliated && OverSalaryType(overSalaryType) != OverSalaryNone {
		errs = append(errs, validator.ValidationError{
			Field:   "over_salary_type",
			Message: ErrInvalidOverSalaryType.Error(),
		})
	}

	if _, ok := validator.IsValidDate(startDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if birthDate != nil {
		if _, ok := validator.IsValidDate(*birthDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "birth_date",
				Message: "birth_date must be in YYYY-MM-DD format",
			})
		}
	}

	return errs
}

// Apply copies the contractual attributes of a validated request onto e.
func (r *CreateEmployeeRequest) Apply(e *Employee) {
	applyContract(e, r.FullName, r.Salary, r.IsFixed, r.IsAffiliated, r.OverSalaryType, r.StartDate, r.BirthDate)
}

// Apply copies the contractual attributes of a validated request onto e.
func (r *ReplaceEmployeeRequest) Apply(e *Employee) {
	applyContract(e, r.FullName, r.Salary, r.IsFixed, r.IsAffiliated, r.OverSalaryType, r.StartDate, r.BirthDate)
}

func applyContract(e *Employee, fullName, salary string, isFixed, isAffiliated bool, overSalaryType, startDate string, birthDate *string) {
	e.FullName = strings.TrimSpace(fullName)
	e.Salary = decimal.RequireFromString(salary)
	e.IsFixed = isFixed
	e.IsAffiliated = isAffiliated
	e.OverSalaryType = OverSalaryType(overSalaryType)
	e.StartDate, _ = validator.IsValidDate(startDate)
	e.BirthDate = nil
	if birthDate != nil {
		bd, _ := validator.IsValidDate(*birthDate)
		e.BirthDate = &bd
	}
}

type TerminateEmployeeRequest struct {
	ID                string `json:"-"`
	TerminationDate   string `json:"termination_date"`
	TerminationReason string `json:"termination_reason"`
}

func (r *TerminateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.TerminationDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "termination_date",
			Message: "termination_date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.TerminationReason) {
		errs = append(errs, validator.ValidationError{
			Field:   "termination_reason",
			Message: "termination_reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Status *string
}

func (f *EmployeeFilter) Validate() error {
	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		}}
	}
	return nil
}

type EmployeeResponse struct {
	ID                string    `json:"id"`
	FullName          string    `json:"full_name"`
	Salary            string    `json:"salary"`
	IsFixed           bool      `json:"is_fixed"`
	IsAffiliated      bool      `json:"is_affiliated"`
	OverSalaryType    string    `json:"over_salary_type"`
	StartDate         string    `json:"start_date"`
	BirthDate         *string   `json:"birth_date,omitempty"`
	Status            string    `json:"status"`
	PINChanged        bool      `json:"pin_changed"`
	PINNeedsReset     bool      `json:"pin_needs_reset"`
	TerminationDate   *string   `json:"termination_date,omitempty"`
	TerminationReason *string   `json:"termination_reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Only present in the creation response.
	TemporaryPIN *string `json:"temporary_pin,omitempty"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                e.ID,
		FullName:          e.FullName,
		Salary:            e.Salary.StringFixed(2),
		IsFixed:           e.IsFixed,
		IsAffiliated:      e.IsAffiliated,
		OverSalaryType:    string(e.OverSalaryType),
		StartDate:         e.StartDate.Format("2006-01-02"),
		Status:            string(e.Status),
		PINChanged:        e.PINChanged,
		PINNeedsReset:     e.PINNeedsReset,
		TerminationReason: e.TerminationReason,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	if e.BirthDate != nil {
		bd := e.BirthDate.Format("2006-01-02")
		resp.BirthDate = &bd
	}
	if e.TerminationDate != nil {
		td := e.TerminationDate.Format("2006-01-02")
		resp.TerminationDate = &td
	}
	return resp
}
