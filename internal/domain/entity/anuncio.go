package entity

import (
	"strconv"
	"strings"
	"time"
)

type Endereco struct {
	Logradouro string   `json:"logradouro,omitempty" firestore:"logradouro,omitempty"`
	Numero     string   `json:"numero,omitempty" firestore:"numero,omitempty"`
	Bairro     string   `json:"bairro,omitempty" firestore:"bairro,omitempty"`
	Cidade     string   `json:"cidade,omitempty" firestore:"cidade,omitempty"`
	Estado     string   `json:"estado,omitempty" firestore:"estado,omitempty"`
	Cep        string   `json:"cep,omitempty" firestore:"cep,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty" firestore:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty" firestore:"longitude,omitempty"`
}

func (e *Endereco) HasCoordinates() bool {
	return e != nil && e.Latitude != nil && e.Longitude != nil
}

// Text joins the non-empty address parts into a single geocodable line.
func (e *Endereco) Text() string {
	if e == nil {
		return ""
	}
	street := strings.TrimSpace(strings.TrimSpace(e.Logradouro) + " " + strings.TrimSpace(e.Numero))
	parts := []string{street, e.Bairro, e.Cidade, e.Estado, e.Cep}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func (e *Endereco) fields() []string {
	if e == nil {
		return nil
	}
	return []string{e.Logradouro, e.Numero, e.Bairro, e.Cidade, e.Estado, e.Cep}
}

// Valuation holds the schema-less attributes fed to the external price model.
type Valuation struct {
	AreaConstruida   *float64 `json:"area_construida,omitempty" firestore:"area_construida,omitempty"`
	AreaTerreno      *float64 `json:"area_terreno,omitempty" firestore:"area_terreno,omitempty"`
	AnoConstrucao    *int     `json:"ano_construcao,omitempty" firestore:"ano_construcao,omitempty"`
	PadraoAcabamento string   `json:"padrao_acabamento,omitempty" firestore:"padrao_acabamento,omitempty"`
	TipoImovel       string   `json:"tipo_imovel,omitempty" firestore:"tipo_imovel,omitempty"`

	Cluster           *int     `json:"cluster,omitempty" firestore:"cluster,omitempty"`
	PredictedLabel    string   `json:"predicted_label,omitempty" firestore:"predicted_label,omitempty"`
	ScoreRecomendacao *float64 `json:"score_recomendacao,omitempty" firestore:"score_recomendacao,omitempty"`
}

func (v Valuation) HasFeatures() bool {
	return v.AreaConstruida != nil || v.AreaTerreno != nil || v.AnoConstrucao != nil ||
		v.PadraoAcabamento != "" || v.TipoImovel != ""
}

type Anuncio struct {
	ID        string    `json:"id" firestore:"-"`
	Titulo    string    `json:"titulo" firestore:"titulo"`
	Descricao string    `json:"descricao" firestore:"descricao"`
	Preco     float64   `json:"preco" firestore:"preco"`
	ImageURL  string    `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	UserID    string    `json:"userId" firestore:"userId"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	Endereco  *Endereco `json:"endereco,omitempty" firestore:"endereco,omitempty"`

	Valuation
}

// PriceText renders the price the way it is matched by free-text search.
func (a *Anuncio) PriceText() string {
	return strconv.FormatFloat(a.Preco, 'f', -1, 64)
}

// SearchableText returns every field free-text search looks at, except owner data.
func (a *Anuncio) SearchableText() []string {
	out := []string{a.Titulo, a.Descricao, a.PriceText()}
	return append(out, a.Endereco.fields()...)
}

// AnuncioPatch is a partial update: nil fields are left untouched.
// Owner and creation time are deliberately absent.
type AnuncioPatch struct {
	Titulo    *string
	Descricao *string
	Preco     *float64
	ImageURL  *string
	Endereco  *Endereco

	AreaConstruida    *float64
	AreaTerreno       *float64
	AnoConstrucao     *int
	PadraoAcabamento  *string
	TipoImovel        *string
	Cluster           *int
	PredictedLabel    *string
	ScoreRecomendacao *float64
}

func (p AnuncioPatch) IsEmpty() bool {
	return p.Titulo == nil && p.Descricao == nil && p.Preco == nil && p.ImageURL == nil &&
		p.Endereco == nil && p.AreaConstruida == nil && p.AreaTerreno == nil &&
		p.AnoConstrucao == nil && p.PadraoAcabamento == nil && p.TipoImovel == nil &&
		p.Cluster == nil && p.PredictedLabel == nil && p.ScoreRecomendacao == nil
}

// Fields maps the patch to Firestore field paths.
func (p AnuncioPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	set := func(path string, present bool, value interface{}) {
		if present {
			fields[path] = value
		}
	}
	set("titulo", p.Titulo != nil, deref(p.Titulo))
	set("descricao", p.Descricao != nil, deref(p.Descricao))
	if p.Preco != nil {
		fields["preco"] = *p.Preco
	}
	set("imageUrl", p.ImageURL != nil, deref(p.ImageURL))
	if p.Endereco != nil {
		fields["endereco"] = *p.Endereco
	}
	if p.AreaConstruida != nil {
		fields["area_construida"] = *p.AreaConstruida
	}
	if p.AreaTerreno != nil {
		fields["area_terreno"] = *p.AreaTerreno
	}
	if p.AnoConstrucao != nil {
		fields["ano_construcao"] = *p.AnoConstrucao
	}
	set("padrao_acabamento", p.PadraoAcabamento != nil, deref(p.PadraoAcabamento))
	set("tipo_imovel", p.TipoImovel != nil, deref(p.TipoImovel))
	if p.Cluster != nil {
		fields["cluster"] = *p.Cluster
	}
	set("predicted_label", p.PredictedLabel != nil, deref(p.PredictedLabel))
	if p.ScoreRecomendacao != nil {
		fields["score_recomendacao"] = *p.ScoreRecomendacao
	}
	return fields
}

// Apply writes the patch onto a copy of a and returns it.
func (p AnuncioPatch) Apply(a Anuncio) Anuncio {
	if p.Titulo != nil {
		a.Titulo = *p.Titulo
	}
	if p.Descricao != nil {
		a.Descricao = *p.Descricao
	}
	if p.Preco != nil {
		a.Preco = *p.Preco
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	if p.Endereco != nil {
		e := *p.Endereco
		a.Endereco = &e
	}
	if p.AreaConstruida != nil {
		a.AreaConstruida = p.AreaConstruida
	}
	if p.AreaTerreno != nil {
		a.AreaTerreno = p.AreaTerreno
	}
	if p.AnoConstrucao != nil {
		a.AnoConstrucao = p.AnoConstrucao
	}
	if p.PadraoAcabamento != nil {
		a.PadraoAcabamento = *p.PadraoAcabamento
	}
	if p.TipoImovel != nil {
		a.TipoImovel = *p.TipoImovel
	}
	if p.Cluster != nil {
		a.Cluster = p.Cluster
	}
	if p.PredictedLabel != nil {
		a.PredictedLabel = *p.PredictedLabel
	}
	if p.ScoreRecomendacao != nil {
		a.ScoreRecomendacao = p.ScoreRecomendacao
	}
	return a
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
