package usecase

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"viva/internal/domain/service"
	"viva/pkg/errors"
)

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	storage := new(MockFileUploadService)
	storage.On("UploadFile", ctx, mock.Anything, int64(4), "image/png", "anuncios").
		Return("https://cdn/imagens/anuncios/x.png", nil)

	uc := NewUploadUseCase(storage, nil)
	url, err := uc.UploadImage(ctx, "U", strings.NewReader("\x89PNG"), 4, "image/png")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/imagens/anuncios/x.png", url)
}

func TestUploadImage_Rejects(t *testing.T) {
	ctx := context.Background()
	uc := NewUploadUseCase(new(MockFileUploadService), nil)

	_, err := uc.UploadImage(ctx, "U", strings.NewReader("x"), 1, "application/pdf")
	assert.Equal(t, http.StatusBadRequest, errors.StatusOf(err))

	_, err = uc.UploadImage(ctx, "U", strings.NewReader(""), 0, "image/png")
	assert.Equal(t, http.StatusBadRequest, errors.StatusOf(err))

	_, err = uc.UploadImage(ctx, "U", strings.NewReader("x"), MaxImageSize+1, "image/png")
	assert.Equal(t, http.StatusRequestEntityTooLarge, errors.StatusOf(err))
}

func TestUploadImage_StorageError(t *testing.T) {
	ctx := context.Background()
	storage := new(MockFileUploadService)
	storage.On("UploadFile", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", stderrors.New("bucket missing"))

	uc := NewUploadUseCase(storage, nil)
	_, err := uc.UploadImage(ctx, "U", strings.NewReader("x"), 1, "image/jpeg")

	assert.Equal(t, http.StatusInternalServerError, errors.StatusOf(err))
}

func TestGeocode(t *testing.T) {
	ctx := context.Background()
	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, "Recife").Return(&service.Coordinates{Latitude: 1, Longitude: 2}, nil)
	geocoder.On("Geocode", ctx, "nowhere").Return(nil, service.ErrAddressNotFound)
	geocoder.On("Geocode", ctx, "boom").Return(nil, stderrors.New("breaker open"))

	uc := NewGeocodeUseCase(geocoder)

	coords, err := uc.Geocode(ctx, "Recife")
	require.NoError(t, err)
	assert.Equal(t, 1.0, coords.Latitude)

	_, err = uc.Geocode(ctx, "nowhere")
	assert.Equal(t, http.StatusNotFound, errors.StatusOf(err))

	_, err = uc.Geocode(ctx, "boom")
	assert.Equal(t, http.StatusInternalServerError, errors.StatusOf(err))

	_, err = uc.Geocode(ctx, " ")
	assert.Equal(t, http.StatusBadRequest, errors.StatusOf(err))
}
