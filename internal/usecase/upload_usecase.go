package usecase

import (
	"context"
	"io"
	"net/http"

	"viva/internal/domain/service"
	"viva/pkg/errors"
	"viva/pkg/logger"
)

const (
	MaxImageSize = 10 << 20
	imageFolder  = "anuncios"
)

type UploadUseCase struct {
	storage service.FileUploadService
	metrics MetricsRecorder
}

func NewUploadUseCase(storage service.FileUploadService, metrics MetricsRecorder) *UploadUseCase {
	return &UploadUseCase{
		storage: storage,
		metrics: orNoop(metrics),
	}
}

// UploadImage stores an image and returns its public URL.
func (uc *UploadUseCase) UploadImage(ctx context.Context, userID string, file io.Reader, size int64, contentType string) (string, error) {
	if _, ok := service.ImageExtension(contentType); !ok {
		return "", errors.BadRequest("Only JPEG, PNG, WebP and GIF images are accepted", nil)
	}
	if size <= 0 {
		return "", errors.BadRequest("file is empty", nil)
	}
	if size > MaxImageSize {
		return "", errors.New("PAYLOAD_TOO_LARGE", "Image exceeds the 10 MiB limit", http.StatusRequestEntityTooLarge, nil)
	}

	url, err := uc.storage.UploadFile(ctx, file, size, contentType, imageFolder)
	if err != nil {
		return "", errors.Internal("Failed to upload image", err)
	}

	uc.metrics.Mutation("uploads", "create")
	logger.Info("Image uploaded by user %s: %s", userID, url)
	return url, nil
}
