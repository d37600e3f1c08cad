package memory

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_ActivePINIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(
		employee.Employee{ID: "e1", FullName: "Ana Torres", PIN: "123456", Status: employee.StatusActive},
		employee.Employee{ID: "e2", FullName: "Luis Mera", PIN: "654321", Status: employee.StatusActive},
		employee.Employee{ID: "e3", FullName: "Pedro Vera", PIN: "222222", Status: employee.StatusArchived},
	)

	_, err := repo.Create(ctx, employee.Employee{ID: "e4", PIN: "123456", Status: employee.StatusActive})
	assert.ErrorIs(t, err, employee.ErrPINInUse)
	_, err = repo.GetByID(ctx, "e4")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = repo.Create(ctx, employee.Employee{ID: "e5", PIN: "222222", Status: employee.StatusActive})
	require.NoError(t, err, "archived holders do not count")

	luis, err := repo.GetByID(ctx, "e2")
	require.NoError(t, err)
	luis.PIN = "123456"
	assert.ErrorIs(t, repo.Replace(ctx, luis), employee.ErrPINInUse)

	stored, err := repo.GetByID(ctx, "e2")
	require.NoError(t, err)
	assert.Equal(t, "654321", stored.PIN)

	luis.Status = employee.StatusArchived
	assert.NoError(t, repo.Replace(ctx, luis), "inactive employees may share a pin")

	ana, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	ana.FullName = "Ana María Torres"
	assert.NoError(t, repo.Replace(ctx, ana), "keeping its own pin")
}
