package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeCriticalLateness    NotificationType = "critical_lateness"
	TypePinRotated          NotificationType = "pin_rotated"
	TypeAttendanceJustified NotificationType = "attendance_justified"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeCriticalLateness,
		TypePinRotated,
		TypeAttendanceJustified,
	}
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
