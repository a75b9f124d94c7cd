package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	var settings entity.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetOrCreate inserts defaults unless the user already has a row; the
// unique user_id index turns a lost race into a no-op insert.
func (r *settingsRepository) GetOrCreate(ctx context.Context, defaults *entity.UserSettings) (*entity.UserSettings, error) {
	err := r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(defaults).Error
	if err != nil {
		return nil, err
	}

	settings, err := r.GetByUserID(ctx, defaults.UserID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, errors.New("settings row missing after insert")
	}
	return settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.UserSettings) error {
	return r.db.WithContext(ctx).Omit("User").Save(settings).Error
}
