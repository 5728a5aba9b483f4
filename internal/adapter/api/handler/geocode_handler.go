package handler

import (
	"github.com/labstack/echo/v4"

	"viva/internal/usecase"
	"viva/pkg/response"
)

type GeocodeHandler struct {
	geocodeUseCase *usecase.GeocodeUseCase
}

func NewGeocodeHandler(geocodeUseCase *usecase.GeocodeUseCase) *GeocodeHandler {
	return &GeocodeHandler{
		geocodeUseCase: geocodeUseCase,
	}
}

func (h *GeocodeHandler) Geocode(c echo.Context) error {
	coords, err := h.geocodeUseCase.Geocode(c.Request().Context(), c.QueryParam("address"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, coords)
}
