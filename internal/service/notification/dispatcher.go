package notification

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
)

// AdminDispatcher fans a notification out to every administrator.
type AdminDispatcher struct {
	service notification.Service
	users   user.UserRepository
}

func NewAdminDispatcher(service notification.Service, users user.UserRepository) *AdminDispatcher {
	return &AdminDispatcher{service: service, users: users}
}

// Dispatch never fails the caller. Lookup and queueing errors are logged.
func (d *AdminDispatcher) Dispatch(ctx context.Context, notifType notification.NotificationType, title, body string, data map[string]interface{}) {
	admins, err := d.users.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		slog.Error("Failed to list administrators for notification", "type", notifType, "error", err)
		return
	}
	if len(admins) == 0 {
		slog.Warn("No administrators to notify", "type", notifType, "title", title)
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(admins))
	for _, admin := range admins {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: admin.ID,
			Type:        notifType,
			Title:       title,
			Message:     body,
			Data:        data,
		})
	}

	if err := d.service.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Error("Failed to dispatch notification", "type", notifType, "error", err)
	}
}
