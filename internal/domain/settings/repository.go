package settings

import "context"

type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when no document has been stored yet.
	Get(ctx context.Context) (GlobalSettings, error)
	Replace(ctx context.Context, s GlobalSettings) error
}
