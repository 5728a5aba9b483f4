package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"viva/internal/adapter/api/handler"
	"viva/internal/adapter/api/middleware"
)

func SetupUploadRouter(e *echo.Echo, uploadHandler *handler.UploadHandler, authMiddleware *middleware.AuthMiddleware) {
	uploads := e.Group("/uploads", authMiddleware.Authenticate, echomw.BodyLimit(handler.UploadBodyLimit))
	uploads.POST("", uploadHandler.UploadImage)
}

func SetupGeocodeRouter(e *echo.Echo, geocodeHandler *handler.GeocodeHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/geocode", geocodeHandler.Geocode, authMiddleware.Authenticate)
}
