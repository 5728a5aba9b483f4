package usecase

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"viva/internal/domain/entity"
	"viva/internal/domain/service"
	"viva/pkg/errors"
)

func TestCreateAnuncio_SetsOwnerAndTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnuncioRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*entity.Anuncio")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Anuncio).ID = "L1"
		}).
		Return(nil)

	uc := NewAnuncioUseCase(repo, new(MockUserRepository), nil, nil, nil)
	before := time.Now()
	created, err := uc.CreateAnuncio(ctx, "U", &entity.Anuncio{
		ID:        "forged",
		Titulo:    " Casa ",
		Descricao: "Tres quartos",
		Preco:     100000,
		UserID:    "someone-else",
	})

	require.NoError(t, err)
	assert.Equal(t, "L1", created.ID)
	assert.Equal(t, "Casa", created.Titulo)
	assert.Equal(t, 100000.0, created.Preco)
	assert.Equal(t, "U", created.UserID)
	assert.False(t, created.CreatedAt.Before(before))
	repo.AssertExpectations(t)
}

func TestCreateAnuncio_Validation(t *testing.T) {
	uc := NewAnuncioUseCase(new(MockAnuncioRepository), new(MockUserRepository), nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  string
		anuncio *entity.Anuncio
	}{
		{"missing uid", "", &entity.Anuncio{Titulo: "a", Descricao: "b"}},
		{"missing data", "U", nil},
		{"blank title", "U", &entity.Anuncio{Titulo: "  ", Descricao: "b"}},
		{"blank description", "U", &entity.Anuncio{Titulo: "a", Descricao: ""}},
		{"negative price", "U", &entity.Anuncio{Titulo: "a", Descricao: "b", Preco: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateAnuncio(ctx, tt.userID, tt.anuncio)
			assert.Equal(t, http.StatusBadRequest, errors.StatusOf(err))
		})
	}
}

func TestCreateAnuncio_Enrichment(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnuncioRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, "Rua A 10, Centro, Recife").
		Return(&service.Coordinates{Latitude: -8.05, Longitude: -34.9}, nil)

	predictor := new(MockPredictor)
	predictor.On("Predict", ctx, mock.MatchedBy(func(f service.PredictionFeatures) bool {
		return f.Preco == 300000 && f.TipoImovel == "apartamento"
	})).Return(&service.Prediction{Cluster: 1, Label: "justo", Score: 0.5}, nil)

	uc := NewAnuncioUseCase(repo, new(MockUserRepository), geocoder, predictor, nil)
	created, err := uc.CreateAnuncio(ctx, "U", &entity.Anuncio{
		Titulo:    "Apto",
		Descricao: "Vista mar",
		Preco:     300000,
		Endereco:  &entity.Endereco{Logradouro: "Rua A", Numero: "10", Bairro: "Centro", Cidade: "Recife"},
		Valuation: entity.Valuation{TipoImovel: "apartamento"},
	})

	require.NoError(t, err)
	require.True(t, created.Endereco.HasCoordinates())
	assert.Equal(t, -8.05, *created.Endereco.Latitude)
	assert.Equal(t, 1, *created.Cluster)
	assert.Equal(t, "justo", created.PredictedLabel)
	assert.Equal(t, 0.5, *created.ScoreRecomendacao)
}

func TestCreateAnuncio_EnrichmentFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnuncioRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, mock.Anything).Return(nil, stderrors.New("upstream down"))
	predictor := new(MockPredictor)
	predictor.On("Predict", ctx, mock.Anything).Return(nil, stderrors.New("timeout"))

	uc := NewAnuncioUseCase(repo, new(MockUserRepository), geocoder, predictor, nil)
	created, err := uc.CreateAnuncio(ctx, "U", &entity.Anuncio{
		Titulo:    "Casa",
		Descricao: "x",
		Endereco:  &entity.Endereco{Cidade: "Olinda"},
		Valuation: entity.Valuation{AreaConstruida: ptr(80.0)},
	})

	require.NoError(t, err)
	assert.False(t, created.Endereco.HasCoordinates())
	assert.Nil(t, created.Cluster)
	repo.AssertExpectations(t)
}

func TestCreateAnuncio_SkipsGeocodeWhenCoordinatesPresent(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnuncioRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	geocoder := new(MockGeocoder)

	uc := NewAnuncioUseCase(repo, new(MockUserRepository), geocoder, nil, nil)
	_, err := uc.CreateAnuncio(ctx, "U", &entity.Anuncio{
		Titulo:    "Casa",
		Descricao: "x",
		Endereco:  &entity.Endereco{Cidade: "Olinda", Latitude: ptr(1.0), Longitude: ptr(2.0)},
	})

	require.NoError(t, err)
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestListAnuncios_Search(t *testing.T) {
	ctx := context.Background()
	anuncios := []*entity.Anuncio{
		{ID: "1", Titulo: "Casa", Descricao: "ampla", Preco: 250000, UserID: "u1",
			Endereco: &entity.Endereco{Bairro: "Boa Viagem"}},
		{ID: "2", Titulo: "Apartamento", Descricao: "novo", Preco: 180000, UserID: "u2"},
		{ID: "3", Titulo: "Terreno", Descricao: "plano", Preco: 90000, UserID: "u1"},
	}

	repo := new(MockAnuncioRepository)
	repo.On("List", ctx).Return(anuncios, nil)
	users := new(MockUserRepository)
	users.On("GetByIDs", ctx, []string{"u1", "u2"}).Return([]*entity.User{
		{ID: "u1", Nome: "Maria Souza", Email: "maria@example.com"},
	}, nil)

	uc := NewAnuncioUseCase(repo, users, nil, nil, nil)

	tests := []struct {
		query string
		want  []string
	}{
		{"viagem", []string{"1"}},
		{"APART", []string{"2"}},
		{"180000", []string{"2"}},
		{"maria", []string{"1", "3"}},
		{"example.com", []string{"1", "3"}},
		{"inexistente", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			result, err := uc.ListAnuncios(ctx, tt.query)
			require.NoError(t, err)
			ids := make([]string, 0, len(result))
			for _, a := range result {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListAnuncios_NoQueryReturnsAll(t *testing.T) {
	ctx := context.Background()
	all := []*entity.Anuncio{{ID: "1"}, {ID: "2"}}
	repo := new(MockAnuncioRepository)
	repo.On("List", ctx).Return(all, nil)
	users := new(MockUserRepository)

	uc := NewAnuncioUseCase(repo, users, nil, nil, nil)
	result, err := uc.ListAnuncios(ctx, "  ")

	require.NoError(t, err)
	assert.Equal(t, all, result)
	users.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestListAnuncios_OwnerLookupLimitedAndBestEffort(t *testing.T) {
	ctx := context.Background()
	var anuncios []*entity.Anuncio
	for i := 0; i < 12; i++ {
		anuncios = append(anuncios, &entity.Anuncio{ID: string(rune('a' + i)), Titulo: "x", UserID: "owner" + string(rune('a'+i))})
	}

	repo := new(MockAnuncioRepository)
	repo.On("List", ctx).Return(anuncios, nil)
	users := new(MockUserRepository)
	users.On("GetByIDs", ctx, mock.MatchedBy(func(ids []string) bool { return len(ids) == 10 })).
		Return(nil, stderrors.New("firestore unavailable"))

	uc := NewAnuncioUseCase(repo, users, nil, nil, nil)
	result, err := uc.ListAnuncios(ctx, "x")

	require.NoError(t, err)
	assert.Len(t, result, 12)
	users.AssertExpectations(t)
}

func TestUpdateAnuncio(t *testing.T) {
	ctx := context.Background()
	existing := &entity.Anuncio{ID: "L", Titulo: "Casa", Descricao: "d", Preco: 1, UserID: "U"}

	t.Run("owner updates", func(t *testing.T) {
		repo := new(MockAnuncioRepository)
		repo.On("GetByID", ctx, "L").Return(existing, nil)
		patch := entity.AnuncioPatch{Preco: ptr(2.0)}
		repo.On("Update", ctx, "L", patch).Return(nil)

		uc := NewAnuncioUseCase(repo, new(MockUserRepository), nil, nil, nil)
		updated, err := uc.UpdateAnuncio(ctx, "U", "L", patch)

		require.NoError(t, err)
		assert.Equal(t, 2.0, updated.Preco)
		assert.Equal(t, "Casa", updated.Titulo)
		assert.Equal(t, 1.0, existing.Preco)
	})

	t.Run("non owner forbidden", func(t *testing.T) {
		repo := new(MockAnuncioRepository)
		repo.On("GetByID", ctx, "L").Return(existing, nil)

		uc := NewAnuncioUseCase(repo, new(MockUserRepository), nil, nil, nil)
		_, err := uc.UpdateAnuncio(ctx, "V", "L", entity.AnuncioPatch{Preco: ptr(2.0)})

		assert.Equal(t, http.StatusForbidden, errors.StatusOf(err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing listing", func(t *testing.T) {
		repo := new(MockAnuncioRepository)
		repo.On("GetByID", ctx, "L").Return(nil, errors.NotFound("Anuncio", nil))

		uc := NewAnuncioUseCase(repo, new(MockUserRepository), nil, nil, nil)
		_, err := uc.UpdateAnuncio(ctx, "U", "L", entity.AnuncioPatch{Preco: ptr(2.0)})

		assert.Equal(t, http.StatusNotFound, errors.StatusOf(err))
	})

	t.Run("empty patch", func(t *testing.T) {
		uc := NewAnuncioUseCase(new(MockAnuncioRepository), new(MockUserRepository), nil, nil, nil)
		_, err := uc.UpdateAnuncio(ctx, "U", "L", entity.AnuncioPatch{})
		assert.Equal(t, http.StatusBadRequest, errors.StatusOf(err))
	})
}

func TestDeleteAnuncio(t *testing.T) {
	ctx := context.Background()
	existing := &entity.Anuncio{ID: "L", UserID: "U"}

	repo := new(MockAnuncioRepository)
	repo.On("GetByID", ctx, "L").Return(existing, nil)
	repo.On("Delete", ctx, "L").Return(nil)
	uc := NewAnuncioUseCase(repo, new(MockUserRepository), nil, nil, nil)

	err := uc.DeleteAnuncio(ctx, "V", "L")
	assert.Equal(t, http.StatusForbidden, errors.StatusOf(err))
	repo.AssertNotCalled(t, "Delete", ctx, "L")

	require.NoError(t, uc.DeleteAnuncio(ctx, "U", "L"))
	repo.AssertCalled(t, "Delete", ctx, "L")
}
