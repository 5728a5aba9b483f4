package handler

import (
	"github.com/labstack/echo/v4"

	"viva/internal/adapter/api/middleware"
	"viva/internal/usecase"
	"viva/pkg/errors"
	"viva/pkg/response"
)

type ComentarioHandler struct {
	comentarioUseCase *usecase.ComentarioUseCase
}

func NewComentarioHandler(comentarioUseCase *usecase.ComentarioUseCase) *ComentarioHandler {
	return &ComentarioHandler{
		comentarioUseCase: comentarioUseCase,
	}
}

type comentarioRequest struct {
	Titulo string `json:"titulo" validate:"required"`
	Texto  string `json:"texto" validate:"required"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

func (r comentarioRequest) input() usecase.ComentarioInput {
	return usecase.ComentarioInput{
		Titulo: r.Titulo,
		Texto:  r.Texto,
		Rating: r.Rating,
	}
}

func (h *ComentarioHandler) bind(c echo.Context) (*comentarioRequest, error) {
	var req comentarioRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.BadRequest("Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *ComentarioHandler) ListComentarios(c echo.Context) error {
	comentarios, err := h.comentarioUseCase.ListComentarios(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, comentarios)
}

func (h *ComentarioHandler) CreateComentario(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return response.Error(c, err)
	}

	comentario, err := h.comentarioUseCase.CreateComentario(c.Request().Context(), middleware.UID(c), c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, comentario)
}

func (h *ComentarioHandler) UpdateComentario(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return response.Error(c, err)
	}

	comentario, err := h.comentarioUseCase.UpdateComentario(
		c.Request().Context(),
		middleware.UID(c),
		c.Param("id"),
		c.Param("commentId"),
		req.input(),
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, comentario)
}

func (h *ComentarioHandler) DeleteComentario(c echo.Context) error {
	err := h.comentarioUseCase.DeleteComentario(c.Request().Context(), middleware.UID(c), c.Param("id"), c.Param("commentId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}
