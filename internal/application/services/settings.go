package services

import (
	"context"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/domain"
)

type SettingsService struct {
	settings application.SettingsStore
}

func NewSettingsService(settings application.SettingsStore) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Settings{}, application.NewInternalError(err)
	}
	return settings, nil
}

// Update merges the patch into the stored settings. Fields absent from the
// patch keep their current values; deviceId is never writable.
func (s *SettingsService) Update(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	settings, err := s.settings.Update(ctx, patch)
	if err != nil {
		return domain.Settings{}, application.NewInternalError(err)
	}
	return settings, nil
}
