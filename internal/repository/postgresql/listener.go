package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
)

// SettingsReloader refreshes the in-process settings snapshot.
type SettingsReloader interface {
	Reload(ctx context.Context) error
}

// ListenSettingsChanges reloads the settings snapshot whenever another
// process replaces the settings document. It blocks until ctx is done,
// reconnecting after connection failures.
func ListenSettingsChanges(ctx context.Context, db *database.DB, reloader SettingsReloader) error {
	for {
		err := listenOnce(ctx, db, reloader)
		if ctx.Err() != nil {
			return nil
		}
		slog.Warn("Settings listener disconnected, retrying", "error", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(5 * time.Second):
		}
	}
}

func listenOnce(ctx context.Context, db *database.DB, reloader SettingsReloader) error {
	conn, err := db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+SettingsChangedChannel); err != nil {
		return fmt.Errorf("listen %s: %w", SettingsChangedChannel, err)
	}
	slog.Info("Listening for settings changes", "channel", SettingsChangedChannel)

	// pick up anything replaced while we were not listening
	if err := reloader.Reload(ctx); err != nil {
		slog.Error("Settings reload failed", "error", err)
	}

	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			return err
		}
		if err := reloader.Reload(ctx); err != nil {
			slog.Error("Settings reload failed", "error", err)
			continue
		}
		slog.Info("Settings reloaded after change notification")
	}
}
