package postgresql

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
)

//go:embed schema.sql
var schema string

// Migrate applies the idempotent schema.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	slog.Info("Database schema applied")
	return nil
}
