package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"viva/internal/domain/entity"
	"viva/internal/domain/repository"
	"viva/pkg/errors"
	"viva/pkg/logger"
)

type firestoreAnuncioRepository struct {
	client *firestore.Client
}

func NewFirestoreAnuncioRepository(client *firestore.Client) repository.AnuncioRepository {
	return &firestoreAnuncioRepository{
		client: client,
	}
}

func (r *firestoreAnuncioRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(anunciosCollection)
}

func (r *firestoreAnuncioRepository) Create(ctx context.Context, anuncio *entity.Anuncio) error {
	doc := r.collection().NewDoc()
	anuncio.ID = doc.ID
	if anuncio.CreatedAt.IsZero() {
		anuncio.CreatedAt = time.Now()
	}

	if _, err := doc.Create(ctx, anuncio); err != nil {
		logger.Error("Error creating anuncio: %v", err)
		return errors.Internal("Error creating anuncio", err)
	}

	return nil
}

func (r *firestoreAnuncioRepository) GetByID(ctx context.Context, id string) (*entity.Anuncio, error) {
	doc, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Anuncio", err)
		}
		logger.Error("Error getting anuncio %s: %v", id, err)
		return nil, errors.Internal("Error getting anuncio by ID", err)
	}

	return toAnuncio(doc)
}

func (r *firestoreAnuncioRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Anuncio, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = r.collection().Doc(id)
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		logger.Error("Error batch fetching anuncios: %v", err)
		return nil, errors.Internal("Error getting anuncios", err)
	}

	anuncios := make([]*entity.Anuncio, 0, len(docs))
	for _, doc := range docs {
		if doc == nil || !doc.Exists() {
			continue
		}
		anuncio, err := toAnuncio(doc)
		if err != nil {
			return nil, err
		}
		anuncios = append(anuncios, anuncio)
	}
	return anuncios, nil
}

func (r *firestoreAnuncioRepository) List(ctx context.Context) ([]*entity.Anuncio, error) {
	return r.query(ctx, r.collection().OrderBy("createdAt", firestore.Desc))
}

func (r *firestoreAnuncioRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Anuncio, error) {
	return r.query(ctx, r.collection().Where("userId", "==", userID))
}

func (r *firestoreAnuncioRepository) query(ctx context.Context, q firestore.Query) ([]*entity.Anuncio, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	anuncios := []*entity.Anuncio{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Error getting anuncios: %v", err)
			return nil, errors.Internal("Error getting anuncios", err)
		}
		anuncio, err := toAnuncio(doc)
		if err != nil {
			return nil, err
		}
		anuncios = append(anuncios, anuncio)
	}
	return anuncios, nil
}

func (r *firestoreAnuncioRepository) Update(ctx context.Context, id string, patch entity.AnuncioPatch) error {
	fields := patch.Fields()
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := r.collection().Doc(id).Update(ctx, updates); err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Anuncio", err)
		}
		logger.Error("Error updating anuncio %s: %v", id, err)
		return errors.Internal("Error updating anuncio", err)
	}
	return nil
}

func (r *firestoreAnuncioRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection().Doc(id).Delete(ctx); err != nil {
		logger.Error("Error deleting anuncio %s: %v", id, err)
		return errors.Internal("Error deleting anuncio", err)
	}
	return nil
}

func toAnuncio(doc *firestore.DocumentSnapshot) (*entity.Anuncio, error) {
	var anuncio entity.Anuncio
	if err := doc.DataTo(&anuncio); err != nil {
		return nil, errors.Internal("Failed to parse anuncio data", err)
	}
	anuncio.ID = doc.Ref.ID
	return &anuncio, nil
}
