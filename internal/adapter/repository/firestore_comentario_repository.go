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

type firestoreComentarioRepository struct {
	client *firestore.Client
}

func NewFirestoreComentarioRepository(client *firestore.Client) repository.ComentarioRepository {
	return &firestoreComentarioRepository{
		client: client,
	}
}

func (r *firestoreComentarioRepository) collection(anuncioID string) *firestore.CollectionRef {
	return r.client.Collection(anunciosCollection).Doc(anuncioID).Collection(comentariosCollection)
}

func (r *firestoreComentarioRepository) ListByAnuncio(ctx context.Context, anuncioID string) ([]*entity.Comentario, error) {
	docs, err := r.collection(anuncioID).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Error listing comentarios for anuncio %s: %v", anuncioID, err)
		return nil, errors.Internal("Error listing comments", err)
	}

	comentarios := make([]*entity.Comentario, 0, len(docs))
	for _, doc := range docs {
		c, err := toComentario(doc)
		if err != nil {
			return nil, err
		}
		comentarios = append(comentarios, c)
	}
	return comentarios, nil
}

func (r *firestoreComentarioRepository) Create(ctx context.Context, comentario *entity.Comentario) error {
	doc := r.collection(comentario.AnuncioID).NewDoc()
	comentario.ID = doc.ID

	if _, err := doc.Create(ctx, comentario); err != nil {
		logger.Error("Error creating comentario: %v", err)
		return errors.Internal("Error creating comment", err)
	}
	return nil
}

func (r *firestoreComentarioRepository) GetByID(ctx context.Context, anuncioID, id string) (*entity.Comentario, error) {
	doc, err := r.collection(anuncioID).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Comment", err)
		}
		return nil, errors.Internal("Error getting comment", err)
	}
	return toComentario(doc)
}

func (r *firestoreComentarioRepository) Update(ctx context.Context, anuncioID string, comentario *entity.Comentario) error {
	if comentario.UpdatedAt.IsZero() {
		comentario.UpdatedAt = time.Now()
	}

	_, err := r.collection(anuncioID).Doc(comentario.ID).Update(ctx, []firestore.Update{
		{Path: "titulo", Value: comentario.Titulo},
		{Path: "texto", Value: comentario.Texto},
		{Path: "rating", Value: comentario.Rating},
		{Path: "updatedAt", Value: comentario.UpdatedAt},
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Comment", err)
		}
		logger.Error("Error updating comentario %s: %v", comentario.ID, err)
		return errors.Internal("Error updating comment", err)
	}
	return nil
}

func (r *firestoreComentarioRepository) Delete(ctx context.Context, anuncioID, id string) error {
	if _, err := r.collection(anuncioID).Doc(id).Delete(ctx); err != nil {
		logger.Error("Error deleting comentario %s: %v", id, err)
		return errors.Internal("Error deleting comment", err)
	}
	return nil
}

func toComentario(doc *firestore.DocumentSnapshot) (*entity.Comentario, error) {
	var c entity.Comentario
	if err := doc.DataTo(&c); err != nil {
		return nil, errors.Internal("Failed to parse comentario data", err)
	}
	c.ID = doc.Ref.ID
	if id := parentAnuncioID(doc.Ref); id != "" {
		c.AnuncioID = id
	}
	return &c, nil
}

// parentAnuncioID reads the listing id from anuncio/{id}/comentarios/{commentId}.
func parentAnuncioID(ref *firestore.DocumentRef) string {
	if ref == nil || ref.Parent == nil || ref.Parent.Parent == nil {
		return ""
	}
	return ref.Parent.Parent.ID
}
