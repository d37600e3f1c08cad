package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
)

// Provider holds the current settings snapshot. Readers get an immutable
// value; writers swap the whole document.
type Provider struct {
	repo    settings.SettingsRepository
	current atomic.Pointer[settings.GlobalSettings]
}

func NewProvider(repo settings.SettingsRepository) *Provider {
	p := &Provider{repo: repo}
	def := settings.Default()
	p.current.Store(&def)
	return p
}

func (p *Provider) Current() settings.GlobalSettings {
	return *p.current.Load()
}

func (p *Provider) Set(s settings.GlobalSettings) {
	p.current.Store(&s)
}

// Reload reads the stored document. Defaults stay in place when nothing
// has been stored yet.
func (p *Provider) Reload(ctx context.Context) error {
	s, err := p.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			slog.Info("No settings stored, using defaults")
			return nil
		}
		return fmt.Errorf("failed to load settings: %w", err)
	}
	p.Set(s)
	slog.Info("Settings snapshot refreshed", "sbu", s.SBU.String(), "weekday_start", s.Schedule.Weekday.Start.String())
	return nil
}
