package repository

import (
	"context"

	"viva/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByIDs returns the profiles that exist among ids.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
}
