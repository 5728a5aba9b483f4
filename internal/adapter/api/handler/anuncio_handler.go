package handler

import (
	"github.com/labstack/echo/v4"

	"viva/internal/adapter/api/middleware"
	"viva/internal/domain/entity"
	"viva/internal/usecase"
	"viva/pkg/errors"
	"viva/pkg/response"
)

type AnuncioHandler struct {
	anuncioUseCase *usecase.AnuncioUseCase
}

func NewAnuncioHandler(anuncioUseCase *usecase.AnuncioUseCase) *AnuncioHandler {
	return &AnuncioHandler{
		anuncioUseCase: anuncioUseCase,
	}
}

// anuncioPayload accepts the writable listing fields. id, userId and
// createdAt are not bindable.
type anuncioPayload struct {
	Titulo    *string          `json:"titulo"`
	Descricao *string          `json:"descricao"`
	Preco     *float64         `json:"preco" validate:"omitempty,gte=0"`
	ImageURL  *string          `json:"imageUrl"`
	Endereco  *entity.Endereco `json:"endereco"`

	AreaConstruida    *float64 `json:"area_construida" validate:"omitempty,gte=0"`
	AreaTerreno       *float64 `json:"area_terreno" validate:"omitempty,gte=0"`
	AnoConstrucao     *int     `json:"ano_construcao"`
	PadraoAcabamento  *string  `json:"padrao_acabamento"`
	TipoImovel        *string  `json:"tipo_imovel"`
	Cluster           *int     `json:"cluster"`
	PredictedLabel    *string  `json:"predicted_label"`
	ScoreRecomendacao *float64 `json:"score_recomendacao"`
}

type createAnuncioRequest struct {
	AnuncioData *anuncioPayload `json:"anuncioData" validate:"required"`
}

func (p *anuncioPayload) patch() entity.AnuncioPatch {
	return entity.AnuncioPatch{
		Titulo:            p.Titulo,
		Descricao:         p.Descricao,
		Preco:             p.Preco,
		ImageURL:          p.ImageURL,
		Endereco:          p.Endereco,
		AreaConstruida:    p.AreaConstruida,
		AreaTerreno:       p.AreaTerreno,
		AnoConstrucao:     p.AnoConstrucao,
		PadraoAcabamento:  p.PadraoAcabamento,
		TipoImovel:        p.TipoImovel,
		Cluster:           p.Cluster,
		PredictedLabel:    p.PredictedLabel,
		ScoreRecomendacao: p.ScoreRecomendacao,
	}
}

func (p *anuncioPayload) anuncio() *entity.Anuncio {
	a := p.patch().Apply(entity.Anuncio{})
	return &a
}

func (h *AnuncioHandler) CreateAnuncio(c echo.Context) error {
	var req createAnuncioRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	// preco stays optional on PUT, so its presence is checked here.
	if req.AnuncioData.Preco == nil {
		return response.Error(c, errors.BadRequest("preco is required", nil))
	}

	anuncio, err := h.anuncioUseCase.CreateAnuncio(c.Request().Context(), middleware.UID(c), req.AnuncioData.anuncio())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, anuncio)
}

func (h *AnuncioHandler) ListAnuncios(c echo.Context) error {
	anuncios, err := h.anuncioUseCase.ListAnuncios(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, anuncios)
}

func (h *AnuncioHandler) GetAnuncio(c echo.Context) error {
	anuncio, err := h.anuncioUseCase.GetAnuncio(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, anuncio)
}

func (h *AnuncioHandler) UpdateAnuncio(c echo.Context) error {
	var req anuncioPayload
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	anuncio, err := h.anuncioUseCase.UpdateAnuncio(c.Request().Context(), middleware.UID(c), c.Param("id"), req.patch())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, anuncio)
}

func (h *AnuncioHandler) DeleteAnuncio(c echo.Context) error {
	if err := h.anuncioUseCase.DeleteAnuncio(c.Request().Context(), middleware.UID(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "Anuncio deleted successfully")
}

func (h *AnuncioHandler) ListByOwner(c echo.Context) error {
	anuncios, err := h.anuncioUseCase.ListByOwner(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, anuncios)
}
