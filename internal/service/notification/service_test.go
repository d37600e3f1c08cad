package notification

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/secret"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cfg Config) (notification.Service, *memory.NotificationRepository) {
	t.Helper()
	repo := memory.NewNotificationRepository()
	svc := NewNotificationService(repo, sse.NewHub(), &secret.Sequence{Prefix: "n"}, cfg)
	t.Cleanup(svc.Stop)
	return svc, repo
}

func TestNotificationService_StopDrainsQueue(t *testing.T) {
	svc, repo := newTestService(t, Config{BatchSize: 100, FlushInterval: time.Hour, WorkerCount: 1})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.QueueNotification(ctx, notification.CreateNotificationRequest{
			RecipientID: "admin-1",
			Type:        notification.TypeCriticalLateness,
			Title:       "Critical lateness",
			Message:     "Ana clocked in late",
		}))
	}

	svc.Stop()

	count, err := repo.GetUnreadCount(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// after stop, notifications are written synchronously
	require.NoError(t, svc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: "admin-1",
		Type:        notification.TypePinRotated,
		Title:       "PIN rotated",
	}))
	count, err = repo.GetUnreadCount(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNotificationService_SubscribeReceivesPublished(t *testing.T) {
	svc, _ := newTestService(t, Config{BatchSize: 1, FlushInterval: 10 * time.Millisecond, WorkerCount: 1})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, cleanup := svc.Subscribe(ctx, "admin-1")
	defer cleanup()

	require.NoError(t, svc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: "admin-1",
		Type:        notification.TypePinRotated,
		Title:       "PIN rotated",
		Message:     "Luis set a new kiosk PIN",
		Data:        map[string]interface{}{"employee_id": "e2"},
	}))

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, notification.TypePinRotated, ev.Data.Type)
		assert.Equal(t, "e2", ev.Data.Data["employee_id"])
		assert.False(t, ev.Data.IsRead)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification event received")
	}
}

func TestNotificationService_ReadFlow(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []*notification.Notification{
		{ID: "n1", RecipientID: "admin-1", Type: notification.TypeCriticalLateness, CreatedAt: time.Now()},
		{ID: "n2", RecipientID: "admin-1", Type: notification.TypePinRotated, CreatedAt: time.Now()},
		{ID: "n3", RecipientID: "admin-2", Type: notification.TypePinRotated, CreatedAt: time.Now()},
	}))

	list, err := svc.GetNotifications(ctx, "admin-1", 0, 500, false)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 2, list.UnreadCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)

	err = svc.MarkAsRead(ctx, "admin-1", notification.MarkAsReadRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	require.NoError(t, svc.MarkAsRead(ctx, "admin-1", notification.MarkAsReadRequest{NotificationIDs: []string{"n1", "n3"}}))
	count, err := svc.GetUnreadCount(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// another user's notification is untouched
	count, err = svc.GetUnreadCount(ctx, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkAllAsRead(ctx, "admin-1"))
	list, err = svc.GetNotifications(ctx, "admin-1", 1, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.Empty(t, list.Notifications)
}

func TestAdminDispatcher_FansOutToAdmins(t *testing.T) {
	svc, repo := newTestService(t, Config{BatchSize: 100, FlushInterval: time.Hour, WorkerCount: 1})
	users := memory.NewUserRepository(
		user.User{ID: "admin-1", Role: user.RoleAdmin},
		user.User{ID: "admin-2", Role: user.RoleAdmin},
		user.User{ID: "reviewer-1", Role: user.RoleReviewer},
	)
	ctx := context.Background()

	NewAdminDispatcher(svc, users).Dispatch(ctx, notification.TypeCriticalLateness,
		"Critical lateness", "Ana clocked in at 08:50", map[string]interface{}{"employee_id": "e1"})
	svc.Stop()

	for id, want := range map[string]int{"admin-1": 1, "admin-2": 1, "reviewer-1": 0} {
		count, err := repo.GetUnreadCount(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, count, id)
	}
}

func TestAdminDispatcher_NoAdminsIsSilent(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	users := memory.NewUserRepository()

	assert.NotPanics(t, func() {
		NewAdminDispatcher(svc, users).Dispatch(context.Background(), notification.TypePinRotated, "PIN rotated", "", nil)
	})
}
