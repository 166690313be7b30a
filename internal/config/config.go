// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	devJWTSecret = "settleup-dev-secret"
)

// Config is the server configuration.
type Config struct {
	Port       int
	DBPath     string
	JWTSecret  string
	SessionTTL time.Duration
	AppEnv     string
	LogLevel   string

	MaxExpenseAmount decimal.Decimal
	ShareTolerance   decimal.Decimal
}

// Load reads the configuration from the environment. Values in a .env file
// in the working directory are used for keys not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	var errs []error
	cfg := &Config{
		DBPath:    get("DB_PATH", "./data/settleup.db"),
		JWTSecret: get("JWT_SECRET", ""),
		AppEnv:    strings.ToLower(get("APP_ENV", EnvDevelopment)),
		LogLevel:  get("LOG_LEVEL", "info"),
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil {
		errs = append(errs, fmt.Errorf("PORT: %w", err))
	}
	cfg.Port = port

	cfg.SessionTTL, err = time.ParseDuration(get("SESSION_TTL", "168h"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SESSION_TTL: %w", err))
	}

	cfg.MaxExpenseAmount, err = decimal.NewFromString(get("MAX_EXPENSE_AMOUNT", "5000"))
	if err != nil {
		errs = append(errs, fmt.Errorf("MAX_EXPENSE_AMOUNT: %w", err))
	}

	cfg.ShareTolerance, err = decimal.NewFromString(get("SHARE_TOLERANCE", "0.1"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SHARE_TOLERANCE: %w", err))
	}

	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.JWTSecret = devJWTSecret
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty"))
	}
	if c.AppEnv != EnvDevelopment && c.AppEnv != EnvProduction {
		errs = append(errs, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.AppEnv))
	}
	if c.JWTSecret == "" || (!c.IsDevelopment() && c.JWTSecret == devJWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if !c.MaxExpenseAmount.IsPositive() {
		errs = append(errs, errors.New("MAX_EXPENSE_AMOUNT must be positive"))
	}
	if c.ShareTolerance.IsNegative() {
		errs = append(errs, errors.New("SHARE_TOLERANCE must not be negative"))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether development-only features are enabled.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ValidationRules returns the expense validation rules for this config.
func (c *Config) ValidationRules() models.ValidationRules {
	return models.ValidationRules{
		MaxAmount:      c.MaxExpenseAmount,
		ShareTolerance: c.ShareTolerance,
	}
}
