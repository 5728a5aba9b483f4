package handler

import (
	"viva/internal/usecase"
)

// Handlers groups every HTTP handler. Upload and Geocode are nil when the
// backing service is not configured.
type Handlers struct {
	Anuncio    *AnuncioHandler
	Comentario *ComentarioHandler
	Favorite   *FavoriteHandler
	User       *UserHandler
	Upload     *UploadHandler
	Geocode    *GeocodeHandler
	Health     *HealthHandler
}

type UseCases struct {
	Anuncio    *usecase.AnuncioUseCase
	Comentario *usecase.ComentarioUseCase
	Favorite   *usecase.FavoriteUseCase
	User       *usecase.UserUseCase
	Upload     *usecase.UploadUseCase
	Geocode    *usecase.GeocodeUseCase
}

func Setup(uc UseCases) *Handlers {
	h := &Handlers{
		Anuncio:    NewAnuncioHandler(uc.Anuncio),
		Comentario: NewComentarioHandler(uc.Comentario),
		Favorite:   NewFavoriteHandler(uc.Favorite),
		User:       NewUserHandler(uc.User),
		Health:     NewHealthHandler(),
	}
	if uc.Upload != nil {
		h.Upload = NewUploadHandler(uc.Upload)
	}
	if uc.Geocode != nil {
		h.Geocode = NewGeocodeHandler(uc.Geocode)
	}
	return h
}
