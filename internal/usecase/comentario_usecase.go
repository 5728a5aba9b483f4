package usecase

import (
	"context"
	"strings"
	"time"

	"viva/internal/domain/entity"
	"viva/internal/domain/repository"
	"viva/pkg/errors"
	"viva/pkg/logger"
)

type ComentarioUseCase struct {
	comentarioRepo repository.ComentarioRepository
	userRepo       repository.UserRepository
	metrics        MetricsRecorder
}

func NewComentarioUseCase(
	comentarioRepo repository.ComentarioRepository,
	userRepo repository.UserRepository,
	metrics MetricsRecorder,
) *ComentarioUseCase {
	return &ComentarioUseCase{
		comentarioRepo: comentarioRepo,
		userRepo:       userRepo,
		metrics:        orNoop(metrics),
	}
}

type ComentarioInput struct {
	Titulo string
	Texto  string
	Rating int
}

func (in ComentarioInput) normalize() (ComentarioInput, error) {
	in.Titulo = strings.TrimSpace(in.Titulo)
	in.Texto = strings.TrimSpace(in.Texto)

	if in.Titulo == "" {
		return in, errors.BadRequest("titulo is required", nil)
	}
	if in.Texto == "" {
		return in, errors.BadRequest("texto is required", nil)
	}
	if in.Rating < entity.MinRating || in.Rating > entity.MaxRating {
		return in, errors.BadRequest("rating must be an integer between 1 and 5", nil)
	}
	return in, nil
}

func (uc *ComentarioUseCase) ListComentarios(ctx context.Context, anuncioID string) ([]*entity.Comentario, error) {
	return uc.comentarioRepo.ListByAnuncio(ctx, anuncioID)
}

func (uc *ComentarioUseCase) CreateComentario(ctx context.Context, userID, anuncioID string, input ComentarioInput) (*entity.Comentario, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}

	var author *entity.User
	user, err := uc.userRepo.GetByID(ctx, userID)
	switch {
	case err == nil:
		author = user
	case errors.Is(err, "NOT_FOUND"):
		logger.Info("No profile for comment author %s, leaving snapshot empty", userID)
	default:
		return nil, err
	}

	now := time.Now()
	comentario := &entity.Comentario{
		AnuncioID:      anuncioID,
		UserID:         userID,
		AuthorSnapshot: entity.SnapshotOf(author),
		Titulo:         input.Titulo,
		Texto:          input.Texto,
		Rating:         input.Rating,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.comentarioRepo.Create(ctx, comentario); err != nil {
		return nil, err
	}

	uc.metrics.Mutation("comentarios", "create")
	return comentario, nil
}

func (uc *ComentarioUseCase) UpdateComentario(ctx context.Context, userID, anuncioID, id string, input ComentarioInput) (*entity.Comentario, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}

	comentario, err := uc.authoredComentario(ctx, userID, anuncioID, id)
	if err != nil {
		return nil, err
	}

	comentario.Titulo = input.Titulo
	comentario.Texto = input.Texto
	comentario.Rating = input.Rating
	comentario.AnuncioID = anuncioID
	comentario.UpdatedAt = time.Now()

	if err := uc.comentarioRepo.Update(ctx, anuncioID, comentario); err != nil {
		return nil, err
	}

	uc.metrics.Mutation("comentarios", "update")
	return comentario, nil
}

func (uc *ComentarioUseCase) DeleteComentario(ctx context.Context, userID, anuncioID, id string) error {
	if _, err := uc.authoredComentario(ctx, userID, anuncioID, id); err != nil {
		return err
	}

	if err := uc.comentarioRepo.Delete(ctx, anuncioID, id); err != nil {
		return err
	}

	uc.metrics.Mutation("comentarios", "delete")
	return nil
}

func (uc *ComentarioUseCase) authoredComentario(ctx context.Context, userID, anuncioID, id string) (*entity.Comentario, error) {
	comentario, err := uc.comentarioRepo.GetByID(ctx, anuncioID, id)
	if err != nil {
		return nil, err
	}
	if comentario.UserID != userID {
		return nil, errors.Forbidden("You can only modify your own comments", nil)
	}
	return comentario, nil
}
