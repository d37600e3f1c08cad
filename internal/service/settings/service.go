package settings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
	provider *Provider
	now      func() time.Time
}

func NewSettingsService(repo settings.SettingsRepository, provider *Provider) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: repo,
		provider:           provider,
		now:                time.Now,
	}
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	return settings.NewSettingsResponse(s.provider.Current()), nil
}

// Replace implements settings.SettingsService.
func (s *SettingsServiceImpl) Replace(ctx context.Context, req settings.ReplaceSettingsRequest) (settings.SettingsResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	req.UpdatedBy = claims.UserID
	next := req.ToSettings()
	next.UpdatedAt = s.now().UTC()

	if err := s.SettingsRepository.Replace(ctx, next); err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to replace settings: %w", err)
	}
	s.provider.Set(next)

	slog.Info("Settings replaced",
		"actor_id", claims.UserID,
		"sbu", next.SBU.String(),
		"iess_rate", next.IESSRate.String(),
		"reserve_rate", next.ReserveRate.String())

	return settings.NewSettingsResponse(next), nil
}
