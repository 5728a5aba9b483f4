package handler

import (
	"github.com/labstack/echo/v4"

	"viva/internal/adapter/api/middleware"
	"viva/internal/usecase"
	"viva/pkg/errors"
	"viva/pkg/response"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

type addFavoriteRequest struct {
	AnuncioID string `json:"anuncioId" validate:"required"`
}

type reorderFavoritesRequest struct {
	AnuncioIDs []string `json:"anuncioIds" validate:"required"`
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	anuncios, err := h.favoriteUseCase.ListFavorites(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, anuncios)
}

func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.favoriteUseCase.AddFavorite(c.Request().Context(), middleware.UID(c), req.AnuncioID); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "Favorite added")
}

func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	if err := h.favoriteUseCase.RemoveFavorite(c.Request().Context(), middleware.UID(c), c.Param("listingId")); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "Favorite removed")
}

func (h *FavoriteHandler) ReorderFavorites(c echo.Context) error {
	var req reorderFavoritesRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.favoriteUseCase.ReorderFavorites(c.Request().Context(), middleware.UID(c), req.AnuncioIDs); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "Favorites order updated")
}
