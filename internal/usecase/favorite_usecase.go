package usecase

import (
	"context"

	"viva/internal/domain/entity"
	"viva/internal/domain/repository"
	"viva/pkg/errors"
	"viva/pkg/utils"
)

// favoriteBatchSize matches Firestore's limit for "in" style lookups.
const favoriteBatchSize = 10

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	anuncioRepo  repository.AnuncioRepository
	metrics      MetricsRecorder
}

func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	anuncioRepo repository.AnuncioRepository,
	metrics MetricsRecorder,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		anuncioRepo:  anuncioRepo,
		metrics:      orNoop(metrics),
	}
}

// ListFavorites returns the user's favorite listings in favorite order.
// Markers whose listing no longer exists are skipped.
func (uc *FavoriteUseCase) ListFavorites(ctx context.Context, userID string) ([]*entity.Anuncio, error) {
	favorites, err := uc.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := entity.FavoriteIDs(entity.SortFavorites(favorites))

	byID := make(map[string]*entity.Anuncio, len(ids))
	for _, batch := range utils.Chunk(ids, favoriteBatchSize) {
		anuncios, err := uc.anuncioRepo.GetByIDs(ctx, batch)
		if err != nil {
			return nil, err
		}
		for _, a := range anuncios {
			byID[a.ID] = a
		}
	}

	result := make([]*entity.Anuncio, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

func (uc *FavoriteUseCase) AddFavorite(ctx context.Context, userID, anuncioID string) error {
	if anuncioID == "" {
		return errors.BadRequest("anuncioId is required", nil)
	}
	if err := uc.favoriteRepo.Add(ctx, userID, anuncioID); err != nil {
		return err
	}
	uc.metrics.Mutation("favorites", "add")
	return nil
}

func (uc *FavoriteUseCase) RemoveFavorite(ctx context.Context, userID, anuncioID string) error {
	if err := uc.favoriteRepo.Remove(ctx, userID, anuncioID); err != nil {
		return err
	}
	uc.metrics.Mutation("favorites", "remove")
	return nil
}

func (uc *FavoriteUseCase) ReorderFavorites(ctx context.Context, userID string, anuncioIDs []string) error {
	if anuncioIDs == nil {
		return errors.BadRequest("anuncioIds is required", nil)
	}
	if err := uc.favoriteRepo.SetOrder(ctx, userID, anuncioIDs); err != nil {
		return err
	}
	uc.metrics.Mutation("favorites", "reorder")
	return nil
}
