package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	// FindActiveByPIN returns every active employee holding pin. More than one
	// result means the uniqueness rule was bypassed.
	FindActiveByPIN(ctx context.Context, pin string) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// Replace stores the whole document, last writer wins.
	Replace(ctx context.Context, e Employee) error
}
