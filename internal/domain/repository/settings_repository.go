package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
)

// SettingsRepository stores the till defaults of each user
type SettingsRepository interface {
	// GetByUserID returns nil when the user has no settings yet
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error)
	// GetOrCreate returns the stored row, inserting defaults first when
	// there is none. Concurrent first reads end up with the same row.
	GetOrCreate(ctx context.Context, defaults *entity.UserSettings) (*entity.UserSettings, error)
	Update(ctx context.Context, settings *entity.UserSettings) error
}
