package repository

import (
	"context"

	"viva/internal/domain/entity"
)

type AnuncioRepository interface {
	// Create assigns the id and stores the listing.
	Create(ctx context.Context, anuncio *entity.Anuncio) error
	GetByID(ctx context.Context, id string) (*entity.Anuncio, error)

	// GetByIDs returns the listings that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Anuncio, error)

	// List returns every listing ordered by creation time, newest first.
	List(ctx context.Context) ([]*entity.Anuncio, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Anuncio, error)
	Update(ctx context.Context, id string, patch entity.AnuncioPatch) error
	Delete(ctx context.Context, id string) error
}
