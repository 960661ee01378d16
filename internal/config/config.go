// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// DBBackend selects the database backend: "sqlite", "mysql", or "postgres".
	DBBackend string `mapstructure:"DB_BACKEND"`
	// DatabaseURL is the DSN for the mysql and postgres backends; unused for sqlite.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// SQLitePath is the database file path for the sqlite backend (e.g. orgmgr.db).
	SQLitePath string `mapstructure:"SQLITE_PATH"`
	// OTLPEndpoint is the OTLP gRPC endpoint for trace export (e.g. http://localhost:4317).
	// Tracing is disabled when empty.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// KafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	// Lifecycle event emission is disabled when empty.
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// EventsKafkaTopic is the Kafka topic for organization lifecycle events.
	EventsKafkaTopic string `mapstructure:"EVENTS_KAFKA_TOPIC"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("DB_BACKEND", "sqlite")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "orgmgr.db")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("EVENTS_KAFKA_TOPIC", "org-events")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	switch cfg.DBBackend {
	case "sqlite", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("config: DB_BACKEND must be sqlite, mysql, or postgres, got %q", cfg.DBBackend)
	}

	if cfg.DBBackend != "sqlite" && cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL must be set for the mysql and postgres backends")
	}
	if cfg.DBBackend == "sqlite" && cfg.SQLitePath == "" {
		return nil, errors.New("config: SQLITE_PATH must be set for the sqlite backend")
	}

	return &cfg, nil
}

// DSN returns the connection string for the configured backend.
func (c *Config) DSN() string {
	if c.DBBackend == "sqlite" {
		return c.SQLitePath
	}
	return c.DatabaseURL
}

// KafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if event emission is enabled (non-empty list) and to create the producer.
func (c *Config) KafkaBrokersList() []string {
	if c == nil || c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
