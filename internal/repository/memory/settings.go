package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
)

type SettingsRepository struct {
	mu      sync.RWMutex
	current *settings.GlobalSettings
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

func (r *SettingsRepository) Get(_ context.Context) (settings.GlobalSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return settings.GlobalSettings{}, settings.ErrSettingsNotFound
	}
	return *r.current, nil
}

func (r *SettingsRepository) Replace(_ context.Context, s settings.GlobalSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = &s
	return nil
}
