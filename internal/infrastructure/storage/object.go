package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"viva/internal/domain/service"
)

// ObjectName builds a unique key like "anuncios/<uuid>-20240102150405.jpg".
func ObjectName(folder, contentType string) (string, error) {
	ext, ok := service.ImageExtension(contentType)
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	name := fmt.Sprintf("%s-%s%s", uuid.New().String(), time.Now().Format("20060102150405"), ext)
	if folder = strings.Trim(folder, "/"); folder != "" {
		name = folder + "/" + name
	}
	return name, nil
}
