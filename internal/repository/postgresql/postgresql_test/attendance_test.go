package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRecord(t *testing.T, employeeID string, ts time.Time, status attendance.Status) attendance.Record {
	t.Helper()
	r, err := postgresql.NewAttendanceRepository(testDB).Create(context.Background(), attendance.Record{
		ID:         ids.NewID(),
		EmployeeID: employeeID,
		Timestamp:  ts,
		Type:       attendance.TypeIn,
		Status:     status,
		CreatedAt:  ts,
	})
	require.NoError(t, err)
	return r
}

func TestAttendanceRepository_ResolveIsCompareAndSet(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB)
	emp := createEmployee(t, "Ana Torres", "123456")
	reviewer := createUser(t, "reviewer@example.com", user.RoleReviewer)
	record := createRecord(t, emp.ID, time.Date(2024, 3, 4, 13, 20, 0, 0, time.UTC), attendance.StatusPendingApproval)

	var wg sync.WaitGroup
	results := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Resolve(ctx, record.ID, attendance.Resolution{
				Status:      attendance.StatusConfirmed,
				ValidatedAt: time.Now(),
				ValidatedBy: reviewer.ID,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, attendance.ErrNotPending)
			lost++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 4, lost)

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusConfirmed, got.Status)
	require.NotNil(t, got.ValidatedBy)
	assert.Equal(t, reviewer.ID, *got.ValidatedBy)
	require.NotNil(t, got.EmployeeName)
	assert.Equal(t, "Ana Torres", *got.EmployeeName)

	_, err = repo.Resolve(ctx, ids.NewID(), attendance.Resolution{Status: attendance.StatusRejected, ValidatedAt: time.Now(), ValidatedBy: reviewer.ID})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_ListFiltersAndPaginates(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB)
	emp := createEmployee(t, "Ana Torres", "123456")

	base := time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createRecord(t, emp.ID, base.AddDate(0, 0, i), attendance.StatusConfirmed)
	}
	createRecord(t, emp.ID, base.AddDate(0, 0, 5), attendance.StatusPendingApproval)

	from := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	status := string(attendance.StatusConfirmed)

	records, total, err := repo.List(ctx, attendance.AttendanceFilter{
		EmployeeID: &emp.ID,
		Status:     &status,
		From:       &from,
		To:         &to,
		Page:       1,
		Limit:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, records, 2)
	assert.True(t, records[0].Timestamp.After(records[1].Timestamp))
}

func TestAttendanceRepository_Delete(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB)
	emp := createEmployee(t, "Ana Torres", "123456")
	record := createRecord(t, emp.ID, time.Now().UTC(), attendance.StatusConfirmed)

	require.NoError(t, repo.Delete(ctx, record.ID))
	assert.ErrorIs(t, repo.Delete(ctx, record.ID), attendance.ErrAttendanceNotFound)
}
