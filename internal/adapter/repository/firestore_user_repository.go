package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"viva/internal/domain/entity"
	"viva/internal/domain/repository"
	"viva/pkg/errors"
	"viva/pkg/logger"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		logger.Error("Error getting user %s: %v", id, err)
		return nil, errors.Internal("Error getting user data", err)
	}

	return toUser(doc)
}

func (r *firestoreUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = r.client.Collection(usersCollection).Doc(id)
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errors.Internal("Error getting users", err)
	}

	users := make([]*entity.User, 0, len(docs))
	for _, doc := range docs {
		if doc == nil || !doc.Exists() {
			continue
		}
		user, err := toUser(doc)
		if err != nil {
			logger.Warn("Skipping unreadable user %s: %v", doc.Ref.ID, err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func toUser(doc *firestore.DocumentSnapshot) (*entity.User, error) {
	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID
	return &user, nil
}
