package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
)

type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []*notification.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateBatch(_ context.Context, notifications []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range notifications {
		cp := *n
		r.notifications = append(r.notifications, &cp)
	}
	return nil
}

func (r *NotificationRepository) GetByUserID(_ context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*notification.Notification
	for _, n := range r.notifications {
		if n.RecipientID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		cp := *n
		matched = append(matched, &cp)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (page - 1) * pageSize
	if start >= total {
		return []*notification.Notification{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *NotificationRepository) GetUnreadCount(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.notifications {
		if n.RecipientID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkAsRead(_ context.Context, ids []string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	now := time.Now()
	for _, n := range r.notifications {
		if _, ok := wanted[n.ID]; ok && n.RecipientID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, n := range r.notifications {
		if n.RecipientID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}
