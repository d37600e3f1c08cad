package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_BatchAndRead(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewNotificationRepository(testDB)
	admin := createUser(t, "admin@example.com", user.RoleAdmin)

	first := &notification.Notification{
		ID: ids.NewID(), RecipientID: admin.ID, Type: notification.TypeCriticalLateness,
		Title: "Critical lateness", Message: "Ana clocked in at 08:50",
		Data: map[string]interface{}{"employee_id": "e1"}, CreatedAt: time.Now().Add(-time.Minute),
	}
	second := &notification.Notification{
		ID: ids.NewID(), RecipientID: admin.ID, Type: notification.TypePinRotated,
		Title: "PIN rotated", Message: "Luis set a new kiosk PIN", CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateBatch(ctx, []*notification.Notification{first, second}))

	list, total, err := repo.GetByUserID(ctx, admin.ID, 1, 10, false)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, notification.TypePinRotated, list[0].Type)
	assert.Equal(t, "e1", list[1].Data["employee_id"])

	require.NoError(t, repo.MarkAsRead(ctx, []string{first.ID}, admin.ID))
	count, err := repo.GetUnreadCount(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.MarkAllAsRead(ctx, admin.ID))
	unread, total, err := repo.GetByUserID(ctx, admin.ID, 1, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, unread)
}
