package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"viva/internal/domain/service"
	"viva/pkg/logger"
)

type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// S3Storage talks to any S3-compatible endpoint, Supabase Storage included.
type S3Storage struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	logger.Info("Initializing S3 storage endpoint=%s bucket=%s ssl=%t", cfg.Endpoint, cfg.Bucket, cfg.UseSSL)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to verify bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	publicBaseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBaseURL == "" {
		publicBaseURL = client.EndpointURL().String()
	}

	return &S3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (s *S3Storage) UploadFile(ctx context.Context, file io.Reader, size int64, contentType, folder string) (string, error) {
	objectKey, err := ObjectName(folder, contentType)
	if err != nil {
		return "", err
	}

	info, err := s.client.PutObject(ctx, s.bucket, objectKey, file, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		logger.Error("S3 upload failed bucket=%s key=%s: %v", s.bucket, objectKey, err)
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	logger.Info("Uploaded %s (%d bytes) to bucket %s", info.Key, info.Size, info.Bucket)
	return s.URLFor(objectKey), nil
}

func (s *S3Storage) URLFor(objectKey string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, objectKey)
}

func (s *S3Storage) DeleteFile(ctx context.Context, fileURL string) error {
	objectKey, err := objectFromURL(s.publicBaseURL+"/", s.bucket, fileURL)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectKey, err)
	}
	return nil
}

func (s *S3Storage) Close() error {
	return nil
}

var _ service.FileUploadService = (*S3Storage)(nil)
