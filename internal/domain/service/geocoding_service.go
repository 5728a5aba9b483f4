package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"viva/pkg/logger"
)

var ErrAddressNotFound = errors.New("address not found")

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

type GeocoderConfig struct {
	BaseURL   string
	UserAgent string
	RPS       float64
	Timeout   time.Duration
}

type nominatimGeocoder struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*Coordinates]
}

func NewNominatimGeocoder(cfg GeocoderConfig) Geocoder {
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &nominatimGeocoder{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RPS), 1),
		breaker:    newBreaker[*Coordinates]("geocoder"),
	}
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *nominatimGeocoder) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrAddressNotFound
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	// An empty result is not a failure, so it is resolved outside the breaker.
	coords, err := g.breaker.Execute(func() (*Coordinates, error) {
		return g.search(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	if coords == nil {
		return nil, ErrAddressNotFound
	}
	return coords, nil
}

func (g *nominatimGeocoder) search(ctx context.Context, address string) (*Coordinates, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("q", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", places[0].Lon, err)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}

// GeocodeCache stores geocoding results by normalized address.
type GeocodeCache interface {
	Get(ctx context.Context, key string) (*Coordinates, error)
	Set(ctx context.Context, key string, coords *Coordinates) error
}

type cachedGeocoder struct {
	next  Geocoder
	cache GeocodeCache
}

// NewCachedGeocoder wraps next with a read-through cache. Cache failures are
// logged and skipped.
func NewCachedGeocoder(next Geocoder, cache GeocodeCache) Geocoder {
	return &cachedGeocoder{next: next, cache: cache}
}

func (g *cachedGeocoder) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	key := NormalizeAddress(address)

	coords, err := g.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Geocode cache read failed for %q: %v", key, err)
	} else if coords != nil {
		return coords, nil
	}

	coords, err = g.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	if coords == nil {
		return nil, ErrAddressNotFound
	}

	if err := g.cache.Set(ctx, key, coords); err != nil {
		logger.Warn("Geocode cache write failed for %q: %v", key, err)
	}
	return coords, nil
}

func NormalizeAddress(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

func newBreaker[T any](name string) *gobreaker.CircuitBreaker[T] {
	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})
}
