package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Feed      FeedConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	AllowOrigins   []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds the signing secret of the hosted auth service tokens.
type JWTConfig struct {
	SecretKey string
}

type FeedConfig struct {
	MaxBucketSize            int
	BucketMultiplier         int
	FetchTimeout             time.Duration
	RecentReviewWindow       time.Duration
	PersonalizationProcedure string
	BreakerFailureThreshold  uint32
	BreakerCooldown          time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Local Guide API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: getEnvDuration("SERVER_REQUEST_TIMEOUT", 10*time.Second),
			AllowOrigins:   []string{getEnv("CORS_ALLOW_ORIGIN", "http://localhost:3000")},
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "postgres"),
			SSLMode:  getEnv("DB_SSL_MODE", "require"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Feed: FeedConfig{
			MaxBucketSize:            getEnvInt("FEED_MAX_BUCKET_SIZE", 150),
			BucketMultiplier:         getEnvInt("FEED_BUCKET_MULTIPLIER", 3),
			FetchTimeout:             getEnvDuration("FEED_FETCH_TIMEOUT", 3*time.Second),
			RecentReviewWindow:       getEnvDuration("FEED_RECENT_REVIEW_WINDOW", 24*time.Hour),
			PersonalizationProcedure: getEnv("FEED_PERSONALIZATION_PROCEDURE", "recommend_personalized_businesses"),
			BreakerFailureThreshold:  uint32(getEnvInt("FEED_BREAKER_FAILURES", 5)),
			BreakerCooldown:          getEnvDuration("FEED_BREAKER_COOLDOWN", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 20),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 40),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}

	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}

	return defaultVal
}
