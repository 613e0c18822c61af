package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	LogLevel           string
	MigrationsPath     string
	RedisAddress       string
	RedisPassword      string
	RedisDB            int
	BackfillLockTTL    time.Duration
	RateLimit          string // ulule format, e.g. "300-M"
	CORSAllowedOrigins []string
	GSTFilingFrequency domain.FilingFrequency
	PostingMapFile     string
	PostingMap         domain.PostingMap
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BACKFILL_LOCK_TTL", "5m")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("GST_FILING_FREQUENCY", string(domain.FilingQuarterly))
	viper.SetDefault("POSTING_MAP_FILE", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	lockTTLStr := viper.GetString("BACKFILL_LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 5 * time.Minute
		log.Printf("Warning: Invalid value for BACKFILL_LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL.String())
	}

	cfg.RedisAddress = viper.GetString("REDIS_ADDRESS")
	if cfg.RedisAddress == "" {
		log.Println("Warning: REDIS_ADDRESS not set. Backfill runs are only serialized within this process.")
	}

	frequency := domain.FilingFrequency(viper.GetString("GST_FILING_FREQUENCY"))
	switch frequency {
	case domain.FilingMonthly, domain.FilingQuarterly, domain.FilingAnnual:
	default:
		log.Printf("Warning: Invalid value for GST_FILING_FREQUENCY ('%s'). Defaulting to %s.\n", frequency, domain.FilingQuarterly)
		frequency = domain.FilingQuarterly
	}

	cfg.PostingMapFile = viper.GetString("POSTING_MAP_FILE")
	cfg.PostingMap = domain.DefaultPostingMap()
	if cfg.PostingMapFile != "" {
		m, err := LoadPostingMap(cfg.PostingMapFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load posting map: %w", err)
		}
		cfg.PostingMap = m
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.BackfillLockTTL = lockTTL
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	cfg.GSTFilingFrequency = frequency

	return cfg, nil
}
