package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"viva/internal/adapter/api"
	"viva/internal/adapter/api/handler"
	apimiddleware "viva/internal/adapter/api/middleware"
	"viva/internal/adapter/api/router"
	"viva/internal/adapter/repository"
	"viva/internal/domain/service"
	"viva/internal/infrastructure/cache"
	"viva/internal/infrastructure/firebase"
	"viva/internal/infrastructure/metrics"
	"viva/internal/infrastructure/ratelimit"
	"viva/internal/infrastructure/storage"
	"viva/internal/usecase"
	"viva/pkg/config"
	"viva/pkg/logger"
	"viva/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize Firebase: %v", err)
		return
	}
	defer clients.Close()

	m := metrics.New()

	anuncioRepo := repository.NewFirestoreAnuncioRepository(clients.Firestore)
	comentarioRepo := repository.NewFirestoreComentarioRepository(clients.Firestore)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(clients.Firestore)
	userRepo := repository.NewFirestoreUserRepository(clients.Firestore)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(clients.Auth)

	geocoder := newGeocoder(ctx, cfg)

	var predictor service.Predictor
	if cfg.PredictorURL != "" {
		predictor = service.NewHTTPPredictor(cfg.PredictorURL, cfg.PredictorTimeout)
		logger.Info("Valuation predictor enabled at %s", cfg.PredictorURL)
	}

	useCases := handler.UseCases{
		Anuncio:    usecase.NewAnuncioUseCase(anuncioRepo, userRepo, geocoder, predictor, m),
		Comentario: usecase.NewComentarioUseCase(comentarioRepo, userRepo, m),
		Favorite:   usecase.NewFavoriteUseCase(favoriteRepo, anuncioRepo, m),
		User:       usecase.NewUserUseCase(userRepo, firebaseAuthClient),
		Geocode:    usecase.NewGeocodeUseCase(geocoder),
	}

	fileStorage, err := newFileStorage(ctx, cfg, clients)
	if err != nil {
		logger.Error("Failed to initialize storage: %v", err)
		return
	}
	if fileStorage != nil {
		defer fileStorage.Close()
		useCases.Upload = usecase.NewUploadUseCase(fileStorage, m)
	}

	limiter := ratelimit.NewRateLimiter(cfg.RateLimitPerMinute)
	limiter.StartCleanupRoutine(ctx.Done())

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.ErrorHandler

	e.Use(middleware.RequestID())
	e.Use(apimiddleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.Metrics(m))
	e.Use(apimiddleware.RateLimit(limiter))

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	router.Setup(e, handler.Setup(useCases), authMiddleware, m.Handler())

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

func newGeocoder(ctx context.Context, cfg *config.Config) service.Geocoder {
	geocoder := service.NewNominatimGeocoder(service.GeocoderConfig{
		BaseURL:   cfg.GeocoderURL,
		UserAgent: cfg.GeocoderUserAgent,
		RPS:       cfg.GeocoderRPS,
	})

	if cfg.RedisAddr == "" {
		return geocoder
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("Redis unavailable at %s, geocoding without cache: %v", cfg.RedisAddr, err)
		return geocoder
	}

	logger.Info("Geocode cache enabled at %s", cfg.RedisAddr)
	return service.NewCachedGeocoder(geocoder, cache.NewRedisGeocodeCache(redisClient, cfg.GeocodeCacheTTL))
}

// newFileStorage returns nil when no provider is configured.
func newFileStorage(ctx context.Context, cfg *config.Config, clients *firebase.Clients) (service.FileUploadService, error) {
	switch cfg.StorageProvider {
	case "":
		logger.Info("No storage provider configured, image upload disabled")
		return nil, nil
	case "supabase", "s3":
		return storage.NewS3Storage(ctx, storage.S3Config{
			Endpoint:      cfg.StorageEndpoint,
			Region:        cfg.StorageRegion,
			AccessKey:     cfg.StorageAccessKey,
			SecretKey:     cfg.StorageSecretKey,
			Bucket:        cfg.StorageBucket,
			UseSSL:        cfg.StorageUseSSL,
			PublicBaseURL: cfg.StoragePublicBaseURL,
		})
	case "gcs":
		return storage.NewCloudStorageClient(ctx, cfg.StorageBucket, clients.Option)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.StorageProvider)
	}
}
