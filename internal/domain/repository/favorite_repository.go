package repository

import (
	"context"

	"viva/internal/domain/entity"
)

type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error)

	// Add is idempotent: an existing marker is left as it is.
	Add(ctx context.Context, userID, anuncioID string) error

	// Remove does not fail when the marker is absent.
	Remove(ctx context.Context, userID, anuncioID string) error

	// SetOrder writes orderIndex=i for anuncioIDs[i] in a single atomic batch.
	SetOrder(ctx context.Context, userID string, anuncioIDs []string) error
}
