package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"viva/internal/domain/service"
	"viva/pkg/errors"
)

type GeocodeUseCase struct {
	geocoder service.Geocoder
}

func NewGeocodeUseCase(geocoder service.Geocoder) *GeocodeUseCase {
	return &GeocodeUseCase{geocoder: geocoder}
}

func (uc *GeocodeUseCase) Geocode(ctx context.Context, address string) (*service.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return nil, errors.BadRequest("address is required", nil)
	}

	coords, err := uc.geocoder.Geocode(ctx, address)
	if stderrors.Is(err, service.ErrAddressNotFound) {
		return nil, errors.NotFound("Address", err)
	}
	if err != nil {
		return nil, errors.Internal("Geocoding failed", err)
	}
	return coords, nil
}
