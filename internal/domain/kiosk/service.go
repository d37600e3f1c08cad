package kiosk

import (
	"context"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
)

// KioskService manages kiosk sessions. Every method returns the session
// snapshot after the action was applied.
type KioskService interface {
	CreateSession(ctx context.Context) (Snapshot, error)
	GetSession(ctx context.Context, id string) (Snapshot, error)

	PressDigit(ctx context.Context, id string, digit rune) (Snapshot, error)
	Backspace(ctx context.Context, id string) (Snapshot, error)
	Clear(ctx context.Context, id string) (Snapshot, error)

	RotatePIN(ctx context.Context, id string, newPIN string) (Snapshot, error)
	Mark(ctx context.Context, id string, markType attendance.Type) (Snapshot, error)

	// Dismiss returns a confirm, change_pin or success screen to idle
	Dismiss(ctx context.Context, id string) (Snapshot, error)
	// Exit aborts back to the caller and ends the session
	Exit(ctx context.Context, id string) (Snapshot, error)
	// CloseSession tears down a session, cancelling pending timeouts
	CloseSession(ctx context.Context, id string) error

	// Watch streams snapshots until the returned cleanup is called or the
	// session ends.
	Watch(ctx context.Context, id string) (<-chan Snapshot, func(), error)
}
