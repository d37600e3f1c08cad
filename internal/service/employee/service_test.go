package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/secret"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminContext() context.Context {
	return jwt.NewContext(context.Background(), "admin-1", user.RoleAdmin)
}

func createRequest() employee.CreateEmployeeRequest {
	birth := "1990-05-17"
	return employee.CreateEmployeeRequest{
		FullName:       "Lucía Andrade",
		Salary:         "482.00",
		IsFixed:        true,
		IsAffiliated:   true,
		OverSalaryType: "monthly",
		StartDate:      "2021-02-01",
		BirthDate:      &birth,
	}
}

func TestCreateEmployee(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	svc := NewEmployeeService(repo, &secret.Sequence{Prefix: "emp", PINs: []string{"123456"}})

	resp, err := svc.CreateEmployee(adminContext(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.ID)
	require.NotNil(t, resp.TemporaryPIN)
	assert.Equal(t, "123456", *resp.TemporaryPIN)
	assert.Equal(t, "active", resp.Status)
	assert.False(t, resp.PINChanged)
	assert.Equal(t, "482.00", resp.Salary)

	stored, err := repo.GetByID(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "123456", stored.PIN)
	assert.True(t, stored.RequiresPINChange())
	assert.True(t, stored.Salary.Equal(decimal.RequireFromString("482")))
}

func TestCreateEmployee_SkipsTakenPINs(t *testing.T) {
	repo := memory.NewEmployeeRepository(employee.Employee{
		ID: "existing", PIN: "111111", Status: employee.StatusActive,
	})
	svc := NewEmployeeService(repo, &secret.Sequence{PINs: []string{"111111", "222222"}})

	resp, err := svc.CreateEmployee(adminContext(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, "222222", *resp.TemporaryPIN)
}

func TestCreateEmployee_GivesUpWhenEveryPINIsTaken(t *testing.T) {
	repo := memory.NewEmployeeRepository(employee.Employee{
		ID: "existing", PIN: "111111", Status: employee.StatusActive,
	})
	svc := NewEmployeeService(repo, &secret.Sequence{PINs: []string{"111111"}})

	_, err := svc.CreateEmployee(adminContext(), createRequest())
	assert.ErrorIs(t, err, employee.ErrPINGenerationFailed)
}

func TestCreateEmployee_AffiliationInvariant(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository(), &secret.Sequence{PINs: []string{"123456"}})

	req := createRequest()
	req.IsAffiliated = false
	req.OverSalaryType = "monthly"

	_, err := svc.CreateEmployee(adminContext(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "over_salary_type")

	req.OverSalaryType = "none"
	_, err = svc.CreateEmployee(adminContext(), req)
	assert.NoError(t, err)
}

func TestCreateEmployee_RequiresClaims(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository(), &secret.Sequence{PINs: []string{"123456"}})

	_, err := svc.CreateEmployee(context.Background(), createRequest())
	assert.Error(t, err)
}

func TestReplaceEmployee_KeepsPINAndStatus(t *testing.T) {
	repo := memory.NewEmployeeRepository(employee.Employee{
		ID: "e1", FullName: "Old", PIN: "654321", PINChanged: true, Status: employee.StatusActive,
	})
	svc := NewEmployeeService(repo, &secret.Sequence{})

	resp, err := svc.ReplaceEmployee(adminContext(), employee.ReplaceEmployeeRequest{
		ID:             "e1",
		FullName:       "New Name",
		Salary:         "600",
		IsAffiliated:   false,
		OverSalaryType: "none",
		StartDate:      "2020-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", resp.FullName)
	assert.Nil(t, resp.BirthDate)

	stored, _ := repo.GetByID(context.Background(), "e1")
	assert.Equal(t, "654321", stored.PIN)
	assert.True(t, stored.PINChanged)
	assert.Equal(t, employee.StatusActive, stored.Status)

	_, err = svc.ReplaceEmployee(adminContext(), employee.ReplaceEmployeeRequest{
		ID: "missing", FullName: "x", Salary: "1", OverSalaryType: "none", StartDate: "2020-01-01",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLifecycle(t *testing.T) {
	repo := memory.NewEmployeeRepository(
		employee.Employee{ID: "e1", PIN: "111111", PINChanged: true, Status: employee.StatusActive},
		employee.Employee{ID: "e2", PIN: "222222", PINChanged: true, Status: employee.StatusActive},
	)
	svc := NewEmployeeService(repo, &secret.Sequence{})
	ctx := adminContext()

	t.Run("force pin reset", func(t *testing.T) {
		resp, err := svc.ForcePINReset(ctx, "e1")
		require.NoError(t, err)
		assert.True(t, resp.PINNeedsReset)
	})

	t.Run("terminate", func(t *testing.T) {
		resp, err := svc.TerminateEmployee(ctx, employee.TerminateEmployeeRequest{
			ID: "e1", TerminationDate: "2024-06-30", TerminationReason: "contract ended",
		})
		require.NoError(t, err)
		assert.Equal(t, "terminated", resp.Status)
		require.NotNil(t, resp.TerminationDate)
		assert.Equal(t, "2024-06-30", *resp.TerminationDate)

		_, err = svc.TerminateEmployee(ctx, employee.TerminateEmployeeRequest{
			ID: "e1", TerminationDate: "2024-06-30", TerminationReason: "again",
		})
		assert.ErrorIs(t, err, employee.ErrAlreadyTerminated)
	})

	t.Run("archive", func(t *testing.T) {
		require.NoError(t, svc.ArchiveEmployee(ctx, "e2"))
		assert.ErrorIs(t, svc.ArchiveEmployee(ctx, "e2"), employee.ErrAlreadyArchived)

		_, err := svc.ForcePINReset(ctx, "e2")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotActive)
	})

	t.Run("records are retained", func(t *testing.T) {
		all, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		active := "active"
		none, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Status: &active})
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestCheckPINAvailable(t *testing.T) {
	repo := memory.NewEmployeeRepository(
		employee.Employee{ID: "e1", PIN: "111111", Status: employee.StatusActive},
		employee.Employee{ID: "e2", PIN: "222222", Status: employee.StatusArchived},
	)
	ctx := context.Background()

	assert.NoError(t, CheckPINAvailable(ctx, repo, "111111", "e1"), "own pin")
	assert.ErrorIs(t, CheckPINAvailable(ctx, repo, "111111", "e3"), employee.ErrPINInUse)
	assert.NoError(t, CheckPINAvailable(ctx, repo, "222222", ""), "archived holders do not count")
}

func TestEmployee_TenureAndBirthday(t *testing.T) {
	birth := time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC)
	e := employee.Employee{
		StartDate: time.Date(2022, time.March, 15, 0, 0, 0, 0, time.UTC),
		BirthDate: &birth,
	}

	assert.Equal(t, 0, e.TenureYears(time.Date(2023, time.March, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, e.TenureYears(time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, e.TenureYears(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, e.TenureYears(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)))

	assert.True(t, e.IsBirthday(time.Date(2024, time.May, 17, 23, 0, 0, 0, time.UTC)))
	assert.False(t, e.IsBirthday(time.Date(2024, time.May, 18, 0, 0, 0, 0, time.UTC)))
	assert.False(t, employee.Employee{}.IsBirthday(time.Now()))
}
