package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// DefaultSourceURL is the Bank of Slovenia daily reference rate list.
const DefaultSourceURL = "http://www.bsi.si/_data/tecajnice/dtecbs-l.xml"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StoreDriver    string
	MigrationsPath string

	// Source document
	SourceURL          string
	SourceMaxRedirects int
	SourceTimeout      time.Duration

	// Ingestion
	IngestOnStartup bool
	IngestBatchSize int

	// HTTP surface
	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("SOURCE_URL", DefaultSourceURL)
	viper.SetDefault("SOURCE_MAX_REDIRECTS", 5)
	viper.SetDefault("SOURCE_TIMEOUT", "60s")
	viper.SetDefault("INGEST_ON_STARTUP", true)
	viper.SetDefault("INGEST_BATCH_SIZE", 500)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.StoreDriver = strings.ToLower(viper.GetString("STORE_DRIVER"))
	if cfg.StoreDriver != StoreDriverPostgres && cfg.StoreDriver != StoreDriverMemory {
		log.Printf("Warning: Unknown STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StoreDriver, StoreDriverPostgres)
		cfg.StoreDriver = StoreDriverPostgres
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StoreDriver == StoreDriverPostgres {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	// Load source timeout (e.g. "30s", "2m")
	sourceTimeoutStr := viper.GetString("SOURCE_TIMEOUT")
	sourceTimeout, err := time.ParseDuration(sourceTimeoutStr)
	if err != nil || sourceTimeout <= 0 {
		sourceTimeout = time.Minute
		log.Printf("Warning: Invalid value for SOURCE_TIMEOUT ('%s'). Defaulting to %s.\n", sourceTimeoutStr, sourceTimeout.String())
	}

	cfg.SourceMaxRedirects = viper.GetInt("SOURCE_MAX_REDIRECTS")
	if cfg.SourceMaxRedirects < 0 {
		log.Printf("Warning: Invalid value for SOURCE_MAX_REDIRECTS (%d). Defaulting to 5.\n", cfg.SourceMaxRedirects)
		cfg.SourceMaxRedirects = 5
	}

	cfg.IngestBatchSize = viper.GetInt("INGEST_BATCH_SIZE")
	if cfg.IngestBatchSize <= 0 {
		log.Printf("Warning: Invalid value for INGEST_BATCH_SIZE (%d). Defaulting to 500.\n", cfg.IngestBatchSize)
		cfg.IngestBatchSize = 500
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.SourceURL = viper.GetString("SOURCE_URL")
	cfg.SourceTimeout = sourceTimeout
	cfg.IngestOnStartup = viper.GetBool("INGEST_ON_STARTUP")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
