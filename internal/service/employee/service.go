package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/secret"
)

// maxPINAttempts bounds how often a temporary PIN is regenerated when it
// collides with an active employee.
const maxPINAttempts = 10

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	generator    secret.Generator
	now          func() time.Time
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, generator secret.Generator) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		generator:    generator,
		now:          time.Now,
	}
}

// CheckPINAvailable returns ErrPINInUse when an active employee other than
// exceptID already holds pin.
func CheckPINAvailable(ctx context.Context, repo employee.EmployeeRepository, pin, exceptID string) error {
	holders, err := repo.FindActiveByPIN(ctx, pin)
	if err != nil {
		return fmt.Errorf("failed to look up pin holders: %w", err)
	}
	for _, h := range holders {
		if h.ID != exceptID {
			return employee.ErrPINInUse
		}
	}
	return nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee.NewEmployeeResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	pin, err := s.temporaryPIN(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	now := s.now()
	newEmployee := employee.Employee{
		ID:            s.generator.NewID(),
		PIN:           pin,
		PINChanged:    false,
		PINNeedsReset: false,
		Status:        employee.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	req.Apply(&newEmployee)

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "actor_id", claims.UserID)

	resp := employee.NewEmployeeResponse(created)
	resp.TemporaryPIN = &pin
	return resp, nil
}

func (s *EmployeeServiceImpl) temporaryPIN(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxPINAttempts; attempt++ {
		pin, err := s.generator.NewPIN()
		if err != nil {
			return "", fmt.Errorf("failed to generate pin: %w", err)
		}
		err = CheckPINAvailable(ctx, s.employeeRepo, pin, "")
		if err == nil {
			return pin, nil
		}
		if !errors.Is(err, employee.ErrPINInUse) {
			return "", err
		}
	}
	return "", employee.ErrPINGenerationFailed
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// ReplaceEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ReplaceEmployee(ctx context.Context, req employee.ReplaceEmployeeRequest) (employee.EmployeeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	req.Apply(&current)
	current.UpdatedAt = s.now()

	if err := s.employeeRepo.Replace(ctx, current); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to replace employee: %w", err)
	}

	slog.Info("Employee replaced", "employee_id", current.ID, "actor_id", claims.UserID)
	return employee.NewEmployeeResponse(current), nil
}

// ArchiveEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ArchiveEmployee(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	current, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if current.Status == employee.StatusArchived {
		return employee.ErrAlreadyArchived
	}

	current.Status = employee.StatusArchived
	current.UpdatedAt = s.now()
	if err := s.employeeRepo.Replace(ctx, current); err != nil {
		return fmt.Errorf("failed to archive employee: %w", err)
	}

	slog.Info("Employee archived", "employee_id", id, "actor_id", claims.UserID)
	return nil
}

// TerminateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) TerminateEmployee(ctx context.Context, req employee.TerminateEmployeeRequest) (employee.EmployeeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	switch current.Status {
	case employee.StatusTerminated:
		return employee.EmployeeResponse{}, employee.ErrAlreadyTerminated
	case employee.StatusArchived:
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotActive
	}

	terminationDate, _ := time.Parse("2006-01-02", req.TerminationDate)
	reason := req.TerminationReason
	current.Status = employee.StatusTerminated
	current.TerminationDate = &terminationDate
	current.TerminationReason = &reason
	current.UpdatedAt = s.now()

	if err := s.employeeRepo.Replace(ctx, current); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to terminate employee: %w", err)
	}

	slog.Info("Employee terminated", "employee_id", current.ID, "actor_id", claims.UserID, "termination_date", req.TerminationDate)
	return employee.NewEmployeeResponse(current), nil
}

// ForcePINReset implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ForcePINReset(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !current.IsActive() {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotActive
	}

	current.PINNeedsReset = true
	current.UpdatedAt = s.now()
	if err := s.employeeRepo.Replace(ctx, current); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to flag pin reset: %w", err)
	}

	slog.Info("Employee PIN reset forced", "employee_id", id, "actor_id", claims.UserID)
	return employee.NewEmployeeResponse(current), nil
}
