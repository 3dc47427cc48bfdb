// Package config loads runtime configuration from the environment so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures the whole service configuration.
type Server struct {
	Addr              string
	DatabaseURL       string
	Redis             RedisConfig
	KafkaBrokers      []string
	KafkaTopic        string
	JWTSigningKey     string
	AdminPasswordHash string
	Suggest           SuggestConfig
}

// RedisConfig captures connection tuning for the cache layer.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SuggestConfig points at the external address suggestion providers.
type SuggestConfig struct {
	MapyURL      string
	MapyAPIKey   string
	NominatimURL string
	Timeout      time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("DOTAZNIK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default, override in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "dotaznik.form-events"
	}

	return Server{
		Addr:              addr,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Redis:             redisFromEnv(),
		KafkaBrokers:      brokers,
		KafkaTopic:        topic,
		JWTSigningKey:     jwtSigningKey,
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		Suggest:           suggestFromEnv(),
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     envInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func suggestFromEnv() SuggestConfig {
	mapyURL := os.Getenv("MAPY_SUGGEST_URL")
	if mapyURL == "" {
		mapyURL = "https://api.mapy.cz/v1/suggest"
	}
	nominatimURL := os.Getenv("NOMINATIM_URL")
	if nominatimURL == "" {
		nominatimURL = "https://nominatim.openstreetmap.org/search"
	}
	return SuggestConfig{
		MapyURL:      mapyURL,
		MapyAPIKey:   os.Getenv("MAPY_API_KEY"),
		NominatimURL: nominatimURL,
		Timeout:      envDuration("SUGGEST_TIMEOUT", 5*time.Second),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return v
}
