package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves a stored key scoped to the user and terminal
	GetByKey(ctx context.Context, key string, userID uuid.UUID, terminalID string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) (int64, error)
}
