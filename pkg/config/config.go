package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	FirebaseProject        string
	FirebaseServiceAccount string
	FirebaseCredentialPath string

	StorageProvider      string
	StorageBucket        string
	StorageEndpoint      string
	StorageRegion        string
	StorageAccessKey     string
	StorageSecretKey     string
	StorageUseSSL        bool
	StoragePublicBaseURL string

	GeocoderURL       string
	GeocoderUserAgent string
	GeocoderRPS       float64
	GeocodeCacheTTL   time.Duration
	RedisAddr         string

	PredictorURL     string
	PredictorTimeout time.Duration

	RateLimitPerMinute int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		FirebaseProject:        getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccount: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseCredentialPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", "./ServiceAccountKey.json"),

		StorageProvider:      getEnv("STORAGE_PROVIDER", ""),
		StorageBucket:        getEnv("STORAGE_BUCKET", "imagens"),
		StorageEndpoint:      getEnv("STORAGE_ENDPOINT", ""),
		StorageRegion:        getEnv("STORAGE_REGION", ""),
		StorageAccessKey:     getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:     getEnv("STORAGE_SECRET_KEY", ""),
		StorageUseSSL:        getEnvAsBool("STORAGE_USE_SSL", true),
		StoragePublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", ""),

		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "viva-api/1.0"),
		GeocoderRPS:       getEnvAsFloat("GEOCODER_RPS", 1),
		GeocodeCacheTTL:   time.Duration(getEnvAsInt64("GEOCODE_CACHE_TTL_HOURS", 24*30)) * time.Hour,
		RedisAddr:         getEnv("REDIS_ADDR", ""),

		PredictorURL:     getEnv("PREDICTOR_URL", ""),
		PredictorTimeout: time.Duration(getEnvAsInt64("PREDICTOR_TIMEOUT_SECONDS", 5)) * time.Second,

		RateLimitPerMinute: int(getEnvAsInt64("RATE_LIMIT_PER_MINUTE", 120)),
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}
