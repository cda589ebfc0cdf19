package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// Persistence of the invoice slot
	StorageBackend string
	StorageKey     string
	StorageFileDir string
	RedisURL       string
	DatabaseURL    string
	MigrationsPath string

	// Text generation collaborator. An empty key is reported on first use.
	GeminiAPIKey       string
	GeminiFastModel    string
	GeminiInsightModel string
	InsightTimeout     time.Duration
	InsightRateLimit   string

	CORSAllowedOrigins []string

	PostHogAPIKey  string
	InstallationID string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_BACKEND", StorageFile)
	viper.SetDefault("STORAGE_KEY", "ai-invoices")
	viper.SetDefault("STORAGE_FILE_DIR", "./data")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("API_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_FAST_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_INSIGHT_MODEL", "gemini-2.5-pro")
	viper.SetDefault("INSIGHT_TIMEOUT", "0s")
	viper.SetDefault("INSIGHT_RATE_LIMIT", "30-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("INSTALLATION_ID", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")

	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_BACKEND")))
	cfg.StorageKey = viper.GetString("STORAGE_KEY")
	cfg.StorageFileDir = viper.GetString("STORAGE_FILE_DIR")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	switch cfg.StorageBackend {
	case StorageFile, StorageMemory:
	case StorageRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("STORAGE_BACKEND=%s requires REDIS_URL", cfg.StorageBackend)
		}
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("STORAGE_BACKEND=%s requires PGSQL_URL", cfg.StorageBackend)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	// API_KEY is the historical name; GEMINI_API_KEY wins when both are set
	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = viper.GetString("API_KEY")
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. AI features will return fallback text.")
	}
	cfg.GeminiFastModel = viper.GetString("GEMINI_FAST_MODEL")
	cfg.GeminiInsightModel = viper.GetString("GEMINI_INSIGHT_MODEL")

	timeoutStr := viper.GetString("INSIGHT_TIMEOUT")
	insightTimeout, err := time.ParseDuration(timeoutStr)
	if err != nil || insightTimeout < 0 {
		insightTimeout = 0
		log.Printf("Warning: Invalid value for INSIGHT_TIMEOUT ('%s'). Defaulting to no timeout.\n", timeoutStr)
	}
	cfg.InsightTimeout = insightTimeout
	cfg.InsightRateLimit = viper.GetString("INSIGHT_RATE_LIMIT")

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.PostHogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.InstallationID = viper.GetString("INSTALLATION_ID")

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
