package employee

import (
	"context"
)

// EmployeeService defines the administrative operations on employees
type EmployeeService interface {
	// CreateEmployee creates an active employee with a generated temporary PIN
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)

	// ReplaceEmployee overwrites the contractual attributes of an employee
	ReplaceEmployee(ctx context.Context, req ReplaceEmployeeRequest) (EmployeeResponse, error)

	// ArchiveEmployee soft deletes an employee
	ArchiveEmployee(ctx context.Context, id string) error

	TerminateEmployee(ctx context.Context, req TerminateEmployeeRequest) (EmployeeResponse, error)

	// ForcePINReset makes the kiosk demand a new PIN on next identification
	ForcePINReset(ctx context.Context, id string) (EmployeeResponse, error)
}
