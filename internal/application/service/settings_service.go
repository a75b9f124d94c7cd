package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/internal/sale"
)

// SettingsService handles till settings of users
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     sale.Settings
}

// NewSettingsService creates a new settings service. defaults seed the
// settings row created on first read.
func NewSettingsService(settingsRepo repository.SettingsRepository, defaults sale.Settings) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		defaults:     defaults,
	}
}

// GetSettings retrieves user settings, creating defaults if none exist
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings, err = s.settingsRepo.GetOrCreate(ctx, &entity.UserSettings{
		UserID:            userID,
		DefaultWarehouse:  s.defaults.DefaultWarehouse,
		DefaultTillNumber: s.defaults.DefaultTillNumber,
		SalesRepCode:      s.defaults.SalesRepCode,
		DeliveryMethod:    s.defaults.DeliveryMethod,
		VATInclusive:      true,
		Currency:          "KES",
		Language:          "en",
	})
	if err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}
	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings. Nil
// fields keep their stored value.
type UpdateSettingsInput struct {
	UserID            uuid.UUID
	DefaultWarehouse  *string
	DefaultTillNumber *string
	SalesRepCode      *string
	DeliveryMethod    *string
	VATInclusive      *bool
	Currency          *string
	Language          *string
}

// UpdateSettings updates user settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.UserSettings, error) {
	settings, err := s.GetSettings(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.DefaultWarehouse != nil {
		settings.DefaultWarehouse = *input.DefaultWarehouse
	}
	if input.DefaultTillNumber != nil {
		settings.DefaultTillNumber = *input.DefaultTillNumber
	}
	if input.SalesRepCode != nil {
		settings.SalesRepCode = *input.SalesRepCode
	}
	if input.DeliveryMethod != nil {
		settings.DeliveryMethod = *input.DeliveryMethod
	}
	if input.VATInclusive != nil {
		settings.VATInclusive = *input.VATInclusive
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.Language != nil {
		settings.Language = *input.Language
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// FetchUserSettings returns the till defaults of a user for a terminal.
// A user without stored settings gets nil, which keeps the terminal defaults.
func (s *SettingsService) FetchUserSettings(ctx context.Context, userID uuid.UUID) (*sale.Settings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings == nil {
		return nil, nil
	}
	return &sale.Settings{
		DefaultWarehouse:  settings.DefaultWarehouse,
		DefaultTillNumber: settings.DefaultTillNumber,
		SalesRepCode:      settings.SalesRepCode,
		DeliveryMethod:    settings.DeliveryMethod,
		VATInclusive:      settings.VATInclusive,
	}, nil
}
