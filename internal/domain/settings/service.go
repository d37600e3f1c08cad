package settings

import "context"

type SettingsService interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Replace(ctx context.Context, req ReplaceSettingsRequest) (SettingsResponse, error)
}

// Provider hands out the current settings snapshot.
type Provider interface {
	Current() GlobalSettings
}
