package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"gelirgider/internal/models"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	// Server
	Port   string
	Env    string
	APIKey string

	// Storage
	StorageBackend string
	SQLitePath     string
	StorageKey     string
	SeedDemo       bool

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Recurring generation; zero disables the scheduler.
	RecurringInterval time.Duration

	// Events; an empty URL disables publishing.
	AMQPURL      string
	AMQPExchange string

	// Static rate source
	Rates models.ExchangeRates
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	config := FromEnv()
	appConfig = config
	return config, nil
}

// FromEnv builds the configuration from the current environment without
// reading any .env file.
func FromEnv() *Config {
	config := &Config{
		// Server
		Port:   getEnv("PORT", "8080"),
		Env:    getEnv("ENV", "development"),
		APIKey: os.Getenv("API_KEY"),

		// Storage
		StorageBackend: getEnv("STORAGE_BACKEND", BackendSQLite),
		SQLitePath:     getEnv("SQLITE_PATH", "gelirgider.db"),
		StorageKey:     getEnv("STORAGE_KEY", "gelir-gider-storage"),
		SeedDemo:       getBool("SEED_DEMO", false),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "gelirgider"),
		DBPassword: getEnv("DB_PASSWORD", "gelirgider"),
		DBName:     getEnv("DB_NAME", "gelirgider"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RecurringInterval: getDuration("RECURRING_INTERVAL", time.Hour),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "gelirgider"),

		Rates: make(models.ExchangeRates),
	}

	switch config.StorageBackend {
	case BackendMemory, BackendSQLite, BackendPostgres:
	default:
		log.Printf("Warning: unknown STORAGE_BACKEND '%s', falling back to %s\n", config.StorageBackend, BackendSQLite)
		config.StorageBackend = BackendSQLite
	}

	for _, c := range models.Currencies {
		if c == models.BaseCurrency {
			continue
		}
		key := "RATES_" + string(c)
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		rate, err := decimal.NewFromString(raw)
		if err != nil || !rate.IsPositive() {
			log.Printf("Warning: invalid %s value '%s', ignoring\n", key, raw)
			continue
		}
		config.Rates[c] = rate
	}

	return config
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if raw == "0" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
