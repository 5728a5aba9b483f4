package repository

import (
	"context"

	"viva/internal/domain/entity"
)

type ComentarioRepository interface {
	// ListByAnuncio returns comments in ascending creation order.
	ListByAnuncio(ctx context.Context, anuncioID string) ([]*entity.Comentario, error)
	Create(ctx context.Context, comentario *entity.Comentario) error
	GetByID(ctx context.Context, anuncioID, id string) (*entity.Comentario, error)
	Update(ctx context.Context, anuncioID string, comentario *entity.Comentario) error
	Delete(ctx context.Context, anuncioID, id string) error
}
