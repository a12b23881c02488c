package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Env: "dev" habilita un secret JWT efímero si falta JWT_SECRET.
	Env      string
	Addr     string
	DBDSN    string
	RedisURL string

	JWT        JWTConfig
	Introspect IntrospectConfig
	Adoption   AdoptionConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
	// Ephemeral: secret aleatorio generado al arrancar (solo APP_ENV=dev).
	Ephemeral bool
}

// IntrospectConfig apunta a un IAM externo. Si URL está vacío se usa JWT local.
type IntrospectConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type AdoptionConfig struct {
	// RequireScheduledVisit: si es true, concluir una adopción exige visita agendada.
	RequireScheduledVisit bool
	LockTTL               time.Duration
}

type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

type LogConfig struct {
	Level  string
	Format string
	App    string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required (set APP_ENV=dev for an ephemeral development secret)")

// FromEnv arma la config desde variables de entorno; main queda liviano.
// Sin JWT_SECRET falla, salvo APP_ENV=dev.
func FromEnv() (Config, error) {
	addr := ":8080"
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		addr = ":" + v
	}

	env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	secret := os.Getenv("JWT_SECRET")
	ephemeral := false
	if strings.TrimSpace(secret) == "" {
		if env != "dev" {
			return Config{}, ErrMissingJWTSecret
		}
		var err error
		if secret, err = randomSecret(); err != nil {
			return Config{}, err
		}
		ephemeral = true
	}

	return Config{
		Env:      env,
		Addr:     addr,
		DBDSN:    os.Getenv("DB_DSN"),
		RedisURL: os.Getenv("REDIS_URL"),
		JWT: JWTConfig{
			Secret: secret,
			Issuer: envOr("JWT_ISSUER", "pet-adoption"),
			TTL:    envDuration("JWT_TTL", 24*time.Hour),

			Ephemeral: ephemeral,
		},
		Introspect: IntrospectConfig{
			URL:     strings.TrimSpace(os.Getenv("AUTH_INTROSPECT_URL")),
			APIKey:  strings.TrimSpace(os.Getenv("AUTH_INTROSPECT_API_KEY")),
			Timeout: envDuration("AUTH_INTROSPECT_TIMEOUT", 5*time.Second),
		},
		Adoption: AdoptionConfig{
			RequireScheduledVisit: envBool("ADOPTION_REQUIRE_VISIT"),
			LockTTL:               envDuration("ADOPTION_LOCK_TTL", 5*time.Second),
		},
		RateLimit: RateLimitConfig{
			PerSecond: envFloat("AUTH_RATE_PER_SEC", 5),
			Burst:     envInt("AUTH_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  os.Getenv("LOG_LEVEL"),
			Format: os.Getenv("LOG_FORMAT"),
			App:    envOr("APP_NAME", "pet-adoption"),
		},
	}, nil
}

// UsesDevSecret indica si el secret es efímero (main lo loguea como warning).
func (c Config) UsesDevSecret() bool {
	return c.JWT.Ephemeral
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(key)), "true")
}

func envDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
