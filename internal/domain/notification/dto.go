package notification

import (
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// CreateNotificationRequest represents a request to create a notification
type CreateNotificationRequest struct {
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}

// MarkAsReadRequest represents a request to mark notifications as read
type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

func (r *MarkAsReadRequest) Validate() error {
	if len(r.NotificationIDs) == 0 {
		return validator.ValidationErrors{{
			Field:   "notification_ids",
			Message: "at least one notification id is required",
		}}
	}
	return nil
}

// ============= Response DTOs =============

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func NewNotificationResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// UnreadCountResponse represents unread count response
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// ============= SSE Event =============

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
