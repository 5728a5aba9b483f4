package router

import (
	"github.com/labstack/echo/v4"

	"viva/internal/adapter/api/handler"
	"viva/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	users := e.Group("/users", authMiddleware.Authenticate)
	users.GET("/:uid", userHandler.GetUser)
}
