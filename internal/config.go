package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16
	RedisURL string
	BaseURL  string
	Admin    AdminConfig
	Order    OrderConfig
	Pricing  PricingConfig
	Storage  StorageConfig
}

// AdminConfig gates the admin panel. A single static password is exchanged
// for a short-lived session cookie.
type AdminConfig struct {
	Password       string
	SessionTTLMins uint16
}

// OrderConfig configures the outbound order channel.
// Phone is the WhatsApp number orders are sent to, digits only with country
// code (e.g., "5491155550000").
type OrderConfig struct {
	Phone string
}

// PricingConfig holds the fixed additive up-charges for dietary variants.
// Values are in the base currency unit (e.g., "1.50").
type PricingConfig struct {
	GlutenFreeUpcharge decimal.Decimal
	SugarFreeUpcharge  decimal.Decimal
}

type StorageConfig struct {
	Provider      string // "local" or "r2"
	LocalPath     string
	LocalURL      string
	R2AccountID   string
	R2AccessKeyID string
	R2SecretKey   string
	R2BucketName  string
	R2PublicURL   string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	glutenUpcharge, err := getEnvDecimal("GLUTEN_FREE_UPCHARGE", "0")
	if err != nil {
		return nil, fmt.Errorf("invalid GLUTEN_FREE_UPCHARGE: %w", err)
	}
	sugarUpcharge, err := getEnvDecimal("SUGAR_FREE_UPCHARGE", "0")
	if err != nil {
		return nil, fmt.Errorf("invalid SUGAR_FREE_UPCHARGE: %w", err)
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 3000),
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		BaseURL:  getEnv("BASE_URL", "http://localhost:3000"),
		Admin: AdminConfig{
			Password:       getEnv("ADMIN_PASSWORD", ""),
			SessionTTLMins: getEnvInt("ADMIN_SESSION_TTL_MINUTES", 120),
		},
		Order: OrderConfig{
			Phone: getEnv("WHATSAPP_PHONE", ""),
		},
		Pricing: PricingConfig{
			GlutenFreeUpcharge: glutenUpcharge,
			SugarFreeUpcharge:  sugarUpcharge,
		},
		Storage: StorageConfig{
			Provider:      getEnv("STORAGE_PROVIDER", "local"),
			LocalPath:     getEnv("LOCAL_STORAGE_PATH", "./data/uploads"),
			LocalURL:      getEnv("LOCAL_STORAGE_URL", "/api/images"),
			R2AccountID:   getEnv("R2_ACCOUNT_ID", ""),
			R2AccessKeyID: getEnv("R2_ACCESS_KEY_ID", ""),
			R2SecretKey:   getEnv("R2_SECRET_ACCESS_KEY", ""),
			R2BucketName:  getEnv("R2_BUCKET_NAME", ""),
			R2PublicURL:   getEnv("R2_PUBLIC_URL", ""),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	// Admin password must be set in production
	if cfg.Env == "prod" && cfg.Admin.Password == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD must be set in production environment")
	}

	// Validate R2 configuration in production
	if cfg.Env == "prod" && cfg.Storage.Provider == "r2" {
		if cfg.Storage.R2AccountID == "" {
			return nil, fmt.Errorf("R2_ACCOUNT_ID required when using R2 storage in production")
		}
		if cfg.Storage.R2AccessKeyID == "" || cfg.Storage.R2SecretKey == "" {
			return nil, fmt.Errorf("R2 credentials required when using R2 storage in production")
		}
		if cfg.Storage.R2BucketName == "" {
			return nil, fmt.Errorf("R2_BUCKET_NAME required when using R2 storage in production")
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDecimal(key, defaultValue string) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return decimal.NewFromString(value)
}
