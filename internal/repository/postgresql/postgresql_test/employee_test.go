package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testDB)

	created := createEmployee(t, "Ana Torres", "123456")

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Torres", got.FullName)
	assert.True(t, got.Salary.Equal(created.Salary))
	assert.Equal(t, employee.OverSalaryMonthly, got.OverSalaryType)
	assert.Nil(t, got.BirthDate)

	_, err = repo.GetByID(ctx, ids.NewID())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_ActivePINIsUnique(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testDB)

	first := createEmployee(t, "Ana Torres", "123456")

	_, err := repo.Create(ctx, newEmployee("Luis Mora", "123456"))
	assert.ErrorIs(t, err, employee.ErrPINInUse)

	// a terminated employee releases the PIN
	first.Status = employee.StatusTerminated
	require.NoError(t, repo.Replace(ctx, first))

	_, err = repo.Create(ctx, newEmployee("Luis Mora", "123456"))
	require.NoError(t, err)

	matches, err := repo.FindActiveByPIN(ctx, "123456")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Luis Mora", matches[0].FullName)
}

func TestEmployeeRepository_ListAndReplace(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testDB)

	b := createEmployee(t, "Bruno", "222222")
	createEmployee(t, "Ana", "111111")

	b.Status = employee.StatusArchived
	require.NoError(t, repo.Replace(ctx, b))

	all, err := repo.List(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana", all[0].FullName)

	active := string(employee.StatusActive)
	onlyActive, err := repo.List(ctx, employee.EmployeeFilter{Status: &active})
	require.NoError(t, err)
	assert.Len(t, onlyActive, 1)

	missing := newEmployee("Ghost", "333333")
	assert.ErrorIs(t, repo.Replace(ctx, missing), employee.ErrEmployeeNotFound)
}
