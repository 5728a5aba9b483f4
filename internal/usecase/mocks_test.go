package usecase

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"viva/internal/domain/entity"
	"viva/internal/domain/service"
)

type MockAnuncioRepository struct {
	mock.Mock
}

func (m *MockAnuncioRepository) Create(ctx context.Context, anuncio *entity.Anuncio) error {
	args := m.Called(ctx, anuncio)
	return args.Error(0)
}

func (m *MockAnuncioRepository) GetByID(ctx context.Context, id string) (*entity.Anuncio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Anuncio), args.Error(1)
}

func (m *MockAnuncioRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Anuncio, error) {
	args := m.Called(ctx, ids)
	if fn, ok := args.Get(0).(func(context.Context, []string) []*entity.Anuncio); ok {
		return fn(ctx, ids), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Anuncio), args.Error(1)
}

func (m *MockAnuncioRepository) List(ctx context.Context) ([]*entity.Anuncio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Anuncio), args.Error(1)
}

func (m *MockAnuncioRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Anuncio, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Anuncio), args.Error(1)
}

func (m *MockAnuncioRepository) Update(ctx context.Context, id string, patch entity.AnuncioPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockAnuncioRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

type MockComentarioRepository struct {
	mock.Mock
}

func (m *MockComentarioRepository) ListByAnuncio(ctx context.Context, anuncioID string) ([]*entity.Comentario, error) {
	args := m.Called(ctx, anuncioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comentario), args.Error(1)
}

func (m *MockComentarioRepository) Create(ctx context.Context, comentario *entity.Comentario) error {
	args := m.Called(ctx, comentario)
	return args.Error(0)
}

func (m *MockComentarioRepository) GetByID(ctx context.Context, anuncioID, id string) (*entity.Comentario, error) {
	args := m.Called(ctx, anuncioID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comentario), args.Error(1)
}

func (m *MockComentarioRepository) Update(ctx context.Context, anuncioID string, comentario *entity.Comentario) error {
	args := m.Called(ctx, anuncioID, comentario)
	return args.Error(0)
}

func (m *MockComentarioRepository) Delete(ctx context.Context, anuncioID, id string) error {
	args := m.Called(ctx, anuncioID, id)
	return args.Error(0)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, anuncioID string) error {
	args := m.Called(ctx, userID, anuncioID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, anuncioID string) error {
	args := m.Called(ctx, userID, anuncioID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) SetOrder(ctx context.Context, userID string, anuncioIDs []string) error {
	args := m.Called(ctx, userID, anuncioIDs)
	return args.Error(0)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*service.Coordinates, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Coordinates), args.Error(1)
}

type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(ctx context.Context, features service.PredictionFeatures) (*service.Prediction, error) {
	args := m.Called(ctx, features)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Prediction), args.Error(1)
}

type MockFileUploadService struct {
	mock.Mock
}

func (m *MockFileUploadService) UploadFile(ctx context.Context, file io.Reader, size int64, contentType, folder string) (string, error) {
	args := m.Called(ctx, file, size, contentType, folder)
	return args.String(0), args.Error(1)
}

func (m *MockFileUploadService) DeleteFile(ctx context.Context, fileURL string) error {
	args := m.Called(ctx, fileURL)
	return args.Error(0)
}

func (m *MockFileUploadService) Close() error {
	return nil
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetUserEmail(ctx context.Context, uid string) (string, error) {
	args := m.Called(ctx, uid)
	return args.String(0), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}
