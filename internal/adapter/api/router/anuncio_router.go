package router

import (
	"github.com/labstack/echo/v4"

	"viva/internal/adapter/api/handler"
	"viva/internal/adapter/api/middleware"
)

func SetupAnuncioRouter(
	e *echo.Echo,
	anuncioHandler *handler.AnuncioHandler,
	comentarioHandler *handler.ComentarioHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	anuncios := e.Group("/anuncios")
	anuncios.GET("/:id", anuncioHandler.GetAnuncio)
	anuncios.GET("/:id/comentarios", comentarioHandler.ListComentarios)

	auth := e.Group("/anuncios", authMiddleware.Authenticate)
	auth.GET("", anuncioHandler.ListAnuncios)
	auth.POST("", anuncioHandler.CreateAnuncio)
	auth.GET("/user/:userId", anuncioHandler.ListByOwner)
	auth.PUT("/:id", anuncioHandler.UpdateAnuncio)
	auth.DELETE("/:id", anuncioHandler.DeleteAnuncio)

	auth.POST("/:id/comentarios", comentarioHandler.CreateComentario)
	auth.PUT("/:id/comentarios/:commentId", comentarioHandler.UpdateComentario)
	auth.DELETE("/:id/comentarios/:commentId", comentarioHandler.DeleteComentario)
}
