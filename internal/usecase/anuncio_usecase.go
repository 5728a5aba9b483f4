package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"viva/internal/domain/entity"
	"viva/internal/domain/repository"
	"viva/internal/domain/service"
	"viva/pkg/errors"
	"viva/pkg/logger"
	"viva/pkg/utils"
)

// searchOwnerLookupLimit caps how many distinct owners are resolved for a search.
const searchOwnerLookupLimit = 10

type AnuncioUseCase struct {
	anuncioRepo repository.AnuncioRepository
	userRepo    repository.UserRepository
	geocoder    service.Geocoder
	predictor   service.Predictor
	metrics     MetricsRecorder
}

// NewAnuncioUseCase accepts a nil geocoder or predictor; the matching
// enrichment step is then skipped.
func NewAnuncioUseCase(
	anuncioRepo repository.AnuncioRepository,
	userRepo repository.UserRepository,
	geocoder service.Geocoder,
	predictor service.Predictor,
	metrics MetricsRecorder,
) *AnuncioUseCase {
	return &AnuncioUseCase{
		anuncioRepo: anuncioRepo,
		userRepo:    userRepo,
		geocoder:    geocoder,
		predictor:   predictor,
		metrics:     orNoop(metrics),
	}
}

func (uc *AnuncioUseCase) CreateAnuncio(ctx context.Context, userID string, anuncio *entity.Anuncio) (*entity.Anuncio, error) {
	if userID == "" {
		return nil, errors.BadRequest("Authenticated user is required", nil)
	}
	if anuncio == nil {
		return nil, errors.BadRequest("anuncioData is required", nil)
	}

	anuncio.Titulo = strings.TrimSpace(anuncio.Titulo)
	anuncio.Descricao = strings.TrimSpace(anuncio.Descricao)
	if err := validateAnuncio(anuncio.Titulo, anuncio.Descricao, anuncio.Preco); err != nil {
		return nil, err
	}

	anuncio.ID = ""
	anuncio.UserID = userID
	anuncio.CreatedAt = time.Now()

	uc.enrich(ctx, anuncio)

	if err := uc.anuncioRepo.Create(ctx, anuncio); err != nil {
		return nil, err
	}

	uc.metrics.Mutation("anuncios", "create")
	logger.Info("Anuncio %s created by user %s", anuncio.ID, userID)
	return anuncio, nil
}

func validateAnuncio(titulo, descricao string, preco float64) error {
	if titulo == "" {
		return errors.BadRequest("titulo is required", nil)
	}
	if descricao == "" {
		return errors.BadRequest("descricao is required", nil)
	}
	if preco < 0 {
		return errors.BadRequest("preco must be at least 0", nil)
	}
	return nil
}

// enrich fills coordinates and valuation output. Failures never block the write.
func (uc *AnuncioUseCase) enrich(ctx context.Context, anuncio *entity.Anuncio) {
	if uc.geocoder != nil && anuncio.Endereco != nil && !anuncio.Endereco.HasCoordinates() {
		if address := anuncio.Endereco.Text(); address != "" {
			coords, err := uc.geocoder.Geocode(ctx, address)
			switch {
			case err == nil:
				anuncio.Endereco.Latitude = &coords.Latitude
				anuncio.Endereco.Longitude = &coords.Longitude
				uc.metrics.Enrichment("geocode", "ok")
			case stderrors.Is(err, service.ErrAddressNotFound):
				logger.Info("No coordinates found for %q", address)
				uc.metrics.Enrichment("geocode", "not_found")
			default:
				logger.Warn("Geocoding failed for %q: %v", address, err)
				uc.metrics.Enrichment("geocode", "error")
			}
		}
	}

	if uc.predictor != nil && anuncio.HasFeatures() {
		prediction, err := uc.predictor.Predict(ctx, service.PredictionFeatures{
			Preco:            anuncio.Preco,
			AreaConstruida:   anuncio.AreaConstruida,
			AreaTerreno:      anuncio.AreaTerreno,
			AnoConstrucao:    anuncio.AnoConstrucao,
			PadraoAcabamento: anuncio.PadraoAcabamento,
			TipoImovel:       anuncio.TipoImovel,
		})
		if err != nil {
			logger.Warn("Prediction failed: %v", err)
			uc.metrics.Enrichment("predict", "error")
			return
		}
		anuncio.Cluster = &prediction.Cluster
		anuncio.PredictedLabel = prediction.Label
		anuncio.ScoreRecomendacao = &prediction.Score
		uc.metrics.Enrichment("predict", "ok")
	}
}

// ListAnuncios returns every listing newest first, filtered by query when set.
func (uc *AnuncioUseCase) ListAnuncios(ctx context.Context, query string) ([]*entity.Anuncio, error) {
	anuncios, err := uc.anuncioRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return anuncios, nil
	}

	owners := uc.searchOwners(ctx, anuncios)

	result := make([]*entity.Anuncio, 0)
	for _, a := range anuncios {
		if matches(a, owners[a.UserID], query) {
			result = append(result, a)
		}
	}
	return result, nil
}

// searchOwners resolves profiles for the first distinct owners, best-effort.
func (uc *AnuncioUseCase) searchOwners(ctx context.Context, anuncios []*entity.Anuncio) map[string]*entity.User {
	ownerIDs := make([]string, 0, len(anuncios))
	for _, a := range anuncios {
		ownerIDs = append(ownerIDs, a.UserID)
	}
	ownerIDs = utils.Distinct(ownerIDs)
	if len(ownerIDs) > searchOwnerLookupLimit {
		ownerIDs = ownerIDs[:searchOwnerLookupLimit]
	}

	owners := make(map[string]*entity.User, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return owners
	}

	users, err := uc.userRepo.GetByIDs(ctx, ownerIDs)
	if err != nil {
		logger.Warn("Owner lookup for search failed: %v", err)
		return owners
	}
	for _, u := range users {
		owners[u.ID] = u
	}
	return owners
}

func matches(a *entity.Anuncio, owner *entity.User, query string) bool {
	fields := a.SearchableText()
	if owner != nil {
		fields = append(fields, owner.Nome, owner.Email)
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func (uc *AnuncioUseCase) GetAnuncio(ctx context.Context, id string) (*entity.Anuncio, error) {
	return uc.anuncioRepo.GetByID(ctx, id)
}

func (uc *AnuncioUseCase) ListByOwner(ctx context.Context, userID string) ([]*entity.Anuncio, error) {
	return uc.anuncioRepo.ListByUserID(ctx, userID)
}

func (uc *AnuncioUseCase) UpdateAnuncio(ctx context.Context, userID, id string, patch entity.AnuncioPatch) (*entity.Anuncio, error) {
	if patch.IsEmpty() {
		return nil, errors.BadRequest("No fields to update", nil)
	}
	if patch.Titulo != nil {
		t := strings.TrimSpace(*patch.Titulo)
		if t == "" {
			return nil, errors.BadRequest("titulo is required", nil)
		}
		patch.Titulo = &t
	}
	if patch.Descricao != nil {
		d := strings.TrimSpace(*patch.Descricao)
		if d == "" {
			return nil, errors.BadRequest("descricao is required", nil)
		}
		patch.Descricao = &d
	}
	if patch.Preco != nil && *patch.Preco < 0 {
		return nil, errors.BadRequest("preco must be at least 0", nil)
	}

	existing, err := uc.ownedAnuncio(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := uc.anuncioRepo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	updated := patch.Apply(*existing)
	uc.metrics.Mutation("anuncios", "update")
	return &updated, nil
}

func (uc *AnuncioUseCase) DeleteAnuncio(ctx context.Context, userID, id string) error {
	if _, err := uc.ownedAnuncio(ctx, userID, id); err != nil {
		return err
	}

	if err := uc.anuncioRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.metrics.Mutation("anuncios", "delete")
	logger.Info("Anuncio %s deleted by user %s", id, userID)
	return nil
}

func (uc *AnuncioUseCase) ownedAnuncio(ctx context.Context, userID, id string) (*entity.Anuncio, error) {
	anuncio, err := uc.anuncioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if anuncio.UserID != userID {
		return nil, errors.Forbidden("You can only modify your own anuncios", nil)
	}
	return anuncio, nil
}
