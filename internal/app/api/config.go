package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/levaja/marketplace-api/internal/platform/observability"
)

const devJWTSecret = "levaja-dev-secret-change-me"

// Config carries the settings of the API process. Every field can come from a YAML file or the environment.
type Config struct {
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info" yaml:"logLevel"`

	HTTP struct {
		Addr              string        `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"30s" yaml:"readTimeout"`
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"1m" yaml:"writeTimeout"`
		IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"shutdownTimeout"`
	} `yaml:"http"`

	Postgres struct {
		// DSN is optional; without it every context runs on in-memory adapters.
		DSN             string        `env:"POSTGRES_DSN" yaml:"dsn"`
		MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" env-default:"10" yaml:"maxOpenConns"`
		MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" env-default:"5" yaml:"maxIdleConns"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" env-default:"5m" yaml:"connMaxLifetime"`
		SlowThreshold   time.Duration `env:"POSTGRES_SLOW_THRESHOLD" env-default:"500ms" yaml:"slowThreshold"`
	} `yaml:"postgres"`

	Temporal struct {
		Address   string `env:"TEMPORAL_ADDRESS" env-default:"localhost:7233" yaml:"address"`
		Namespace string `env:"TEMPORAL_NAMESPACE" env-default:"default" yaml:"namespace"`
		Disabled  bool   `env:"TEMPORAL_DISABLED" env-default:"false" yaml:"disabled"`
	} `yaml:"temporal"`

	Auth struct {
		JWTSecret  string        `env:"JWT_SECRET" env-default:"levaja-dev-secret-change-me" yaml:"jwtSecret"`
		Issuer     string        `env:"JWT_ISSUER" env-default:"levaja-marketplace" yaml:"issuer"`
		TokenTTL   time.Duration `env:"JWT_TTL" env-default:"24h" yaml:"tokenTTL"`
		SessionTTL time.Duration `env:"SESSION_TTL" env-default:"24h" yaml:"sessionTTL"`
		BcryptCost int           `env:"BCRYPT_COST" env-default:"10" yaml:"bcryptCost"`
	} `yaml:"auth"`

	Seed struct {
		Disabled bool `env:"SEED_DISABLED" env-default:"false" yaml:"disabled"`
	} `yaml:"seed"`
}

// Load reads configPath when given and lets the environment override it.
func Load(configPath string) (*Config, error) {
	var cfg Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		err = cleanenv.ReadConfig(configPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if _, err := observability.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.IsProduction() && c.Auth.JWTSecret == devJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL and SESSION_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
