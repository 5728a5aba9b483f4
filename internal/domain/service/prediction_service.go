package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

// PredictionFeatures is the payload sent to the valuation model.
type PredictionFeatures struct {
	Preco            float64  `json:"preco"`
	AreaConstruida   *float64 `json:"area_construida,omitempty"`
	AreaTerreno      *float64 `json:"area_terreno,omitempty"`
	AnoConstrucao    *int     `json:"ano_construcao,omitempty"`
	PadraoAcabamento string   `json:"padrao_acabamento,omitempty"`
	TipoImovel       string   `json:"tipo_imovel,omitempty"`
}

type Prediction struct {
	Cluster int     `json:"cluster"`
	Label   string  `json:"label"`
	Score   float64 `json:"score"`
}

type Predictor interface {
	Predict(ctx context.Context, features PredictionFeatures) (*Prediction, error)
}

type httpPredictor struct {
	endpoint   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*Prediction]
}

func NewHTTPPredictor(endpoint string, timeout time.Duration) Predictor {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpPredictor{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    newBreaker[*Prediction]("predictor"),
	}
}

func (p *httpPredictor) Predict(ctx context.Context, features PredictionFeatures) (*Prediction, error) {
	return p.breaker.Execute(func() (*Prediction, error) {
		return p.call(ctx, features)
	})
}

func (p *httpPredictor) call(ctx context.Context, features PredictionFeatures) (*Prediction, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predictor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predictor returned status %d", resp.StatusCode)
	}

	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode prediction: %w", err)
	}
	return &prediction, nil
}
