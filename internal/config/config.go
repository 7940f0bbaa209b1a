package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string        `env:"REDIS_PASSWORD"`
	RedisDB   int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Auth Config
	JWTSecret string `env:"JWT_SECRET"`

	// Lifecycle Config
	MultiVolunteer bool `env:"MULTI_VOLUNTEER" envDefault:"false"`

	// Incentive Config
	MinWithdrawal             int64 `env:"MIN_WITHDRAWAL" envDefault:"1000"`
	WithdrawalStep            int64 `env:"WITHDRAWAL_STEP" envDefault:"1000"`
	IncentiveUnitsPerCurrency int64 `env:"INCENTIVE_UNITS_PER_CURRENCY" envDefault:"100"`

	// Payout Config
	PayoutURL           string        `env:"PAYOUT_URL"`
	PayoutKeyID         string        `env:"PAYOUT_KEY_ID"`
	PayoutKeySecret     string        `env:"PAYOUT_KEY_SECRET"`
	PayoutSourceAccount string        `env:"PAYOUT_SOURCE_ACCOUNT"`
	PayoutCurrency      string        `env:"PAYOUT_CURRENCY" envDefault:"INR"`
	PayoutTimeout       time.Duration `env:"PAYOUT_TIMEOUT" envDefault:"10s"`
	PayoutMaxRetries    int           `env:"PAYOUT_MAX_RETRIES" envDefault:"3"`
	PayoutBaseDelay     time.Duration `env:"PAYOUT_BASE_DELAY" envDefault:"500ms"`

	// Reconciliation Config
	ReconcileSchedule string        `env:"RECONCILE_SCHEDULE" envDefault:"@every 5m"`
	ReconcileAfter    time.Duration `env:"RECONCILE_AFTER" envDefault:"10m"`

	// Media Config
	MediaDir     string `env:"MEDIA_DIR" envDefault:"data/media"`
	MediaBaseURL string `env:"MEDIA_BASE_URL" envDefault:"/media"`

	// Rate limit Config
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		StorageDriver:             strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		DatabaseURL:               os.Getenv("DATABASE_URL"),
		HTTPPort:                  getEnv("HTTP_PORT", "8080"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		RedisAddr:                 getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                 os.Getenv("REDIS_PASSWORD"),
		RedisDB:                   getEnvAsInt("REDIS_DB", 0),
		CacheTTL:                  getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		JWTSecret:                 os.Getenv("JWT_SECRET"),
		MultiVolunteer:            getEnvAsBool("MULTI_VOLUNTEER", false),
		MinWithdrawal:             int64(getEnvAsInt("MIN_WITHDRAWAL", 1000)),
		WithdrawalStep:            int64(getEnvAsInt("WITHDRAWAL_STEP", 1000)),
		IncentiveUnitsPerCurrency: int64(getEnvAsInt("INCENTIVE_UNITS_PER_CURRENCY", 100)),
		PayoutURL:                 os.Getenv("PAYOUT_URL"),
		PayoutKeyID:               os.Getenv("PAYOUT_KEY_ID"),
		PayoutKeySecret:           os.Getenv("PAYOUT_KEY_SECRET"),
		PayoutSourceAccount:       os.Getenv("PAYOUT_SOURCE_ACCOUNT"),
		PayoutCurrency:            getEnv("PAYOUT_CURRENCY", "INR"),
		PayoutTimeout:             getEnvAsDuration("PAYOUT_TIMEOUT", 10*time.Second),
		PayoutMaxRetries:          getEnvAsInt("PAYOUT_MAX_RETRIES", 3),
		PayoutBaseDelay:           getEnvAsDuration("PAYOUT_BASE_DELAY", 500*time.Millisecond),
		ReconcileSchedule:         getEnv("RECONCILE_SCHEDULE", "@every 5m"),
		ReconcileAfter:            getEnvAsDuration("RECONCILE_AFTER", 10*time.Minute),
		MediaDir:                  getEnv("MEDIA_DIR", "data/media"),
		MediaBaseURL:              getEnv("MEDIA_BASE_URL", "/media"),
		RateLimitRequests:         getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:           getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры и согласованность настроек
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.MinWithdrawal <= 0 || c.WithdrawalStep <= 0 {
		return fmt.Errorf("MIN_WITHDRAWAL and WITHDRAWAL_STEP must be positive")
	}
	if c.IncentiveUnitsPerCurrency <= 0 {
		return fmt.Errorf("INCENTIVE_UNITS_PER_CURRENCY must be positive")
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
