package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/microin-api/internal/constants"
)

// Store drivers
const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
)

// ErrMissingRequiredEnv is returned by Load when a required variable is unset
var ErrMissingRequiredEnv = errors.New("missing required environment variables")

type Config struct {
	Port    string
	GinMode string

	OpenAIAPIKey          string
	OpenAIBaseURL         string
	OpenAIModel           string
	RecommendationTimeout time.Duration

	StoreDriver string
	SQLiteDSN   string
	SeedEnabled bool
	SeedFile    string

	RedisAddr              string
	RedisPassword          string
	RecommendationCacheTTL time.Duration

	CORSAllowOrigins []string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. A missing OpenAI credential is a fatal error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current process environment
func FromEnv() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:    getEnv("PORT", "3001"),
		GinMode: getEnv("GIN_MODE", "debug"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMemory)),
		SQLiteDSN:   getEnv("SQLITE_DSN", "file::memory:?cache=shared"),
		SeedFile:    getEnv("SEED_FILE", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
	}

	var err error
	if cfg.RecommendationTimeout, err = getDuration("RECOMMENDATION_TIMEOUT", constants.DefaultRecommendationTimeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.RecommendationCacheTTL, err = getDuration("RECOMMENDATION_CACHE_TTL", constants.DefaultRecommendationTTL); err != nil {
		errs = append(errs, err)
	}
	if cfg.SeedEnabled, err = getBool("SEED_ENABLED", true); err != nil {
		errs = append(errs, err)
	}

	if cfg.StoreDriver != StoreDriverMemory && cfg.StoreDriver != StoreDriverSQLite {
		errs = append(errs, fmt.Errorf("STORE_DRIVER: unsupported driver %q", cfg.StoreDriver))
	}

	if cfg.OpenAIAPIKey == "" {
		errs = append(errs, fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingRequiredEnv))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, value)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
