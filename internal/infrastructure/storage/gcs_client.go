package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"viva/internal/domain/service"
	"viva/pkg/logger"
)

const gcsBaseURL = "https://storage.googleapis.com/"

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	logger.Info("Cloud Storage client ready for bucket %s", bucketName)
	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, size int64, contentType, folder string) (string, error) {
	objectName, err := ObjectName(folder, contentType)
	if err != nil {
		return "", err
	}

	obj := c.client.Bucket(c.bucketName).Object(objectName)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %v", err)
	}

	return gcsBaseURL + c.bucketName + "/" + objectName, nil
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	objectName, err := objectFromURL(gcsBaseURL, c.bucketName, fileURL)
	if err != nil {
		return err
	}

	if err := c.client.Bucket(c.bucketName).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

var _ service.FileUploadService = (*CloudStorageClient)(nil)

// objectFromURL extracts the object key from {base}{bucket}/{key}.
func objectFromURL(base, bucket, fileURL string) (string, error) {
	if !strings.HasPrefix(fileURL, base) {
		return "", fmt.Errorf("invalid storage URL format")
	}

	parts := strings.SplitN(strings.TrimPrefix(fileURL, base), "/", 2)
	if len(parts) != 2 || parts[0] != bucket || parts[1] == "" {
		return "", fmt.Errorf("invalid storage URL format or bucket mismatch")
	}
	return parts[1], nil
}
