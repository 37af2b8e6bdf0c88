package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Persistence
	StoreBackend   string
	StoreNamespace string
	SQLitePath     string
	DatabaseURL    string

	// S3 Storage
	S3 S3Config

	// Ledger behaviour
	EnforceContributionCap bool
	SeedDefaults           bool
	DefaultMonthlyIncome   decimal.Decimal
	PresetsPath            string
	// SaveRetryInterval is how often an unsaved ledger is retried; 0 disables
	SaveRetryInterval time.Duration

	// Rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds the configuration from the current environment without
// reading a .env file
func FromEnv() (*Config, error) {
	income, err := decimal.NewFromString(getEnv("DEFAULT_MONTHLY_INCOME", "0"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_MONTHLY_INCOME must be a decimal amount: %w", err)
	}
	retryInterval, err := time.ParseDuration(getEnv("SAVE_RETRY_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("SAVE_RETRY_INTERVAL must be a duration: %w", err)
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		Env:            getEnv("ENV", "development"),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
		StoreNamespace: getEnv("STORE_NAMESPACE", "default"),
		SQLitePath:     getEnv("SQLITE_PATH", "data/sprout.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "sprout-ledger"),
			Prefix:          getEnv("S3_PREFIX", "ledgers"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		EnforceContributionCap: getEnvBool("ENFORCE_CONTRIBUTION_CAP", false),
		SeedDefaults:           getEnvBool("SEED_DEFAULTS", true),
		DefaultMonthlyIncome:   income,
		PresetsPath:            getEnv("PRESETS_PATH", ""),
		SaveRetryInterval:      retryInterval,
		RateLimitPerMinute:     getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:         getEnvInt("RATE_LIMIT_BURST", 20),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreMemory:
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_BACKEND is sqlite")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND is postgres")
		}
	case StoreS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORE_BACKEND is s3")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, sqlite, postgres, s3 (got %q)", c.StoreBackend)
	}

	if strings.TrimSpace(c.StoreNamespace) == "" {
		return fmt.Errorf("STORE_NAMESPACE must not be empty")
	}
	if c.DefaultMonthlyIncome.IsNegative() {
		return fmt.Errorf("DEFAULT_MONTHLY_INCOME must not be negative")
	}
	if c.SaveRetryInterval < 0 {
		return fmt.Errorf("SAVE_RETRY_INTERVAL must not be negative")
	}
	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
