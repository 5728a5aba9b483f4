package router

import (
	"github.com/labstack/echo/v4"

	"viva/internal/adapter/api/handler"
	"viva/internal/adapter/api/middleware"
)

func SetupFavoriteRouter(e *echo.Echo, favoriteHandler *handler.FavoriteHandler, authMiddleware *middleware.AuthMiddleware) {
	favorites := e.Group("/favorites", authMiddleware.Authenticate)
	favorites.GET("", favoriteHandler.ListFavorites)
	favorites.POST("", favoriteHandler.AddFavorite)
	favorites.PATCH("/order", favoriteHandler.ReorderFavorites)
	favorites.DELETE("/:listingId", favoriteHandler.RemoveFavorite)
}
