package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const activePINConstraint = "employees_active_pin_key"

const employeeColumns = `
	id, full_name, pin, pin_changed, pin_needs_reset, salary, is_fixed, is_affiliated,
	over_salary_type, start_date, birth_date, status, termination_date, termination_reason,
	created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var overSalaryType, status string

	err := row.Scan(
		&e.ID, &e.FullName, &e.PIN, &e.PINChanged, &e.PINNeedsReset, &e.Salary, &e.IsFixed, &e.IsAffiliated,
		&overSalaryType, &e.StartDate, &e.BirthDate, &status, &e.TerminationDate, &e.TerminationReason,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	e.OverSalaryType = employee.OverSalaryType(overSalaryType)
	e.Status = employee.Status(status)
	return e, nil
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	var args []interface{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY full_name ASC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return collectEmployees(rows)
}

// FindActiveByPIN implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) FindActiveByPIN(ctx context.Context, pin string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE pin = $1 AND status = 'active'`

	rows, err := q.Query(ctx, query, pin)
	if err != nil {
		return nil, fmt.Errorf("failed to find employees by pin: %w", err)
	}
	return collectEmployees(rows)
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := q.Exec(ctx, query,
		newEmployee.ID,
		newEmployee.FullName,
		newEmployee.PIN,
		newEmployee.PINChanged,
		newEmployee.PINNeedsReset,
		newEmployee.Salary,
		newEmployee.IsFixed,
		newEmployee.IsAffiliated,
		string(newEmployee.OverSalaryType),
		newEmployee.StartDate,
		newEmployee.BirthDate,
		string(newEmployee.Status),
		newEmployee.TerminationDate,
		newEmployee.TerminationReason,
		newEmployee.CreatedAt,
		newEmployee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, activePINConstraint) {
			return employee.Employee{}, employee.ErrPINInUse
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// Replace implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Replace(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			full_name = $2, pin = $3, pin_changed = $4, pin_needs_reset = $5, salary = $6,
			is_fixed = $7, is_affiliated = $8, over_salary_type = $9, start_date = $10,
			birth_date = $11, status = $12, termination_date = $13, termination_reason = $14,
			updated_at = $15
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		e.ID,
		e.FullName,
		e.PIN,
		e.PINChanged,
		e.PINNeedsReset,
		e.Salary,
		e.IsFixed,
		e.IsAffiliated,
		string(e.OverSalaryType),
		e.StartDate,
		e.BirthDate,
		string(e.Status),
		e.TerminationDate,
		e.TerminationReason,
		e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, activePINConstraint) {
			return employee.ErrPINInUse
		}
		return fmt.Errorf("failed to replace employee %s: %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
