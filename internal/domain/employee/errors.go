package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeNotActive     = errors.New("employee is not active")
	ErrPINInUse              = errors.New("pin is already assigned to another active employee")
	ErrInvalidOverSalaryType = errors.New("over_salary_type must be none when the employee is not affiliated")
	ErrAlreadyArchived       = errors.New("employee is already archived")
	ErrAlreadyTerminated     = errors.New("employee is already terminated")
	ErrPINGenerationFailed   = errors.New("could not generate a unique temporary pin")
)
