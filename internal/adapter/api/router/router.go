package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"viva/internal/adapter/api/handler"
	"viva/internal/adapter/api/middleware"
)

// Setup registers every route. metricsHandler may be nil.
func Setup(e *echo.Echo, h *handler.Handlers, authMiddleware *middleware.AuthMiddleware, metricsHandler http.Handler) {
	SetupHealthRouter(e, h.Health)
	SetupAnuncioRouter(e, h.Anuncio, h.Comentario, authMiddleware)
	SetupFavoriteRouter(e, h.Favorite, authMiddleware)
	SetupUserRouter(e, h.User, authMiddleware)

	if h.Upload != nil {
		SetupUploadRouter(e, h.Upload, authMiddleware)
	}
	if h.Geocode != nil {
		SetupGeocodeRouter(e, h.Geocode, authMiddleware)
	}
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}
}
