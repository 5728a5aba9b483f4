package client

import (
	"context"
	"fmt"
	"io"

	"viva/internal/domain/entity"
)

type ListingAPI interface {
	UploadImage(ctx context.Context, filename, contentType string, image io.Reader) (string, error)
	CreateAnuncio(ctx context.Context, anuncio *entity.Anuncio) (*entity.Anuncio, error)
}

// ListingDraft is a listing to publish, optionally with a picture.
type ListingDraft struct {
	Anuncio          entity.Anuncio
	Image            io.Reader
	ImageName        string
	ImageContentType string
}

// SaveListing uploads the draft's image, if any, and then creates the
// listing pointing at it. Nothing is created when the upload fails.
// Geocoding is not done here: the server fills endereco coordinates on
// create when they are missing.
func SaveListing(ctx context.Context, api ListingAPI, draft ListingDraft) (*entity.Anuncio, error) {
	anuncio := draft.Anuncio

	if draft.Image != nil {
		name := draft.ImageName
		if name == "" {
			name = "image"
		}
		url, err := api.UploadImage(ctx, name, draft.ImageContentType, draft.Image)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		anuncio.ImageURL = url
	}

	created, err := api.CreateAnuncio(ctx, &anuncio)
	if err != nil {
		return nil, fmt.Errorf("create anuncio: %w", err)
	}
	return created, nil
}
