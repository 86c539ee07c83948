package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable through REGISTRY_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Server captures process level configuration.
type Server struct {
	Addr           string        `env:"REGISTRY_ADDR" envDefault:":8080"`
	LogLevel       string        `env:"REGISTRY_LOG_LEVEL" envDefault:"info"`
	Store          string        `env:"REGISTRY_STORE" envDefault:"memory"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	Database Database
	JWT      JWT
	Tracing  Tracing
}

// Database configures the PostgreSQL store.
type Database struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"5m"`
	AutoMigrate     bool          `env:"DATABASE_AUTO_MIGRATE" envDefault:"true"`
}

// JWT configures bearer token validation for the registry API.
type JWT struct {
	SigningKey string `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	Issuer     string `env:"JWT_ISSUER" envDefault:"social-registry"`
	Audience   string `env:"JWT_AUDIENCE" envDefault:"registry-api"`
}

// Tracing configures the OpenTelemetry tracer provider.
type Tracing struct {
	Enabled     bool    `env:"TRACING_ENABLED" envDefault:"false"`
	Exporter    string  `env:"TRACING_EXPORTER" envDefault:"stdout"`
	ServiceName string  `env:"TRACING_SERVICE_NAME" envDefault:"social-registry"`
	SampleRate  float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects combinations that cannot start a server.
func (c Server) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when REGISTRY_STORE=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("unsupported REGISTRY_STORE %q", c.Store)
	}
	if c.JWT.SigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY must not be empty")
	}
	return nil
}
