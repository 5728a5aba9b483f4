package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"viva/internal/domain/entity"
	"viva/internal/domain/repository"
	"viva/pkg/errors"
	"viva/pkg/logger"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{client: client}
}

func (r *firestoreFavoriteRepository) collection(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(favoritesCollection)
}

// ListByUser reads every marker unordered; markers without orderIndex would be
// dropped by an OrderBy("orderIndex") query.
func (r *firestoreFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error) {
	docs, err := r.collection(userID).Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Error getting favorites for user %s: %v", userID, err)
		return nil, errors.Internal("Error getting favorites", err)
	}

	favorites := make([]entity.Favorite, 0, len(docs))
	for _, doc := range docs {
		var fav entity.Favorite
		if err := doc.DataTo(&fav); err != nil {
			logger.Warn("Skipping unreadable favorite %s for user %s: %v", doc.Ref.ID, userID, err)
			continue
		}
		fav.AnuncioID = doc.Ref.ID
		favorites = append(favorites, fav)
	}
	return favorites, nil
}

func (r *firestoreFavoriteRepository) Add(ctx context.Context, userID, anuncioID string) error {
	_, err := r.collection(userID).Doc(anuncioID).Create(ctx, entity.Favorite{
		AnuncioID: anuncioID,
		AddedAt:   time.Now(),
	})
	if isAlreadyExists(err) {
		logger.Info("Favorite %s already exists for user %s", anuncioID, userID)
		return nil
	}
	if err != nil {
		logger.Error("Error adding favorite %s for user %s: %v", anuncioID, userID, err)
		return errors.Internal("Error adding favorite", err)
	}

	logger.Info("Favorite %s added for user %s", anuncioID, userID)
	return nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, anuncioID string) error {
	if _, err := r.collection(userID).Doc(anuncioID).Delete(ctx); err != nil {
		logger.Error("Error removing favorite %s for user %s: %v", anuncioID, userID, err)
		return errors.Internal("Error removing favorite", err)
	}

	logger.Info("Favorite %s removed for user %s", anuncioID, userID)
	return nil
}

func (r *firestoreFavoriteRepository) SetOrder(ctx context.Context, userID string, anuncioIDs []string) error {
	if len(anuncioIDs) == 0 {
		return nil
	}

	// Every index lands or none does.
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for i, anuncioID := range anuncioIDs {
			if err := tx.Update(r.collection(userID).Doc(anuncioID), []firestore.Update{
				{Path: "orderIndex", Value: i},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Error updating favorites order for user %s: %v", userID, err)
		return errors.Internal("Error updating favorites order", err)
	}

	logger.Info("Favorites order updated for user %s", userID)
	return nil
}
