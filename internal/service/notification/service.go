package notification

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/secret"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	ids    secret.Generator
	config Config

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, hub *sse.Hub, ids secret.Generator, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		ids:    ids,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

// worker is the background worker that processes notification queue
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = s.newNotification(req)
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("Notification batch insert failed", "worker", id, "count", len(notifications), "error", err)
		} else {
			slog.Debug("Notifications inserted", "worker", id, "count", len(notifications))
			s.publish(notifications...)
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// drain what is already queued
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *service) newNotification(req notification.CreateNotificationRequest) *notification.Notification {
	return &notification.Notification{
		ID:          s.ids.NewID(),
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}
}

func (s *service) publish(notifications ...*notification.Notification) {
	for _, n := range notifications {
		s.hub.Publish(n.RecipientID, sse.Event{
			Event: "notification",
			Data:  notification.NewNotificationResponse(n),
		})
	}
}

// QueueNotification queues a notification for async processing
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	if s.stopped.Load() {
		return s.directInsert(ctx, req)
	}

	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Queue full, try direct insert
		return s.directInsert(ctx, req)
	}
}

// QueueBulkNotification queues multiple notifications for async processing
func (s *service) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, req := range reqs {
		if err := s.QueueNotification(ctx, req); err != nil {
			slog.Warn("Failed to queue notification", "recipient_id", req.RecipientID, "type", req.Type, "error", err)
		}
	}
	return nil
}

// directInsert inserts a notification directly when queue is full
func (s *service) directInsert(ctx context.Context, req notification.CreateNotificationRequest) error {
	n := s.newNotification(req)
	if err := s.repo.CreateBatch(ctx, []*notification.Notification{n}); err != nil {
		return err
	}
	s.publish(n)
	return nil
}

// GetNotifications retrieves paginated notifications for a user
func (s *service) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.NewNotificationResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetUnreadCount returns the count of unread notifications
func (s *service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks specified notifications as read
func (s *service) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, userID)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.NotificationResponse); ok {
					select {
					case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop flushes queued notifications and stops the workers
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}
