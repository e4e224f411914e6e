package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	CatalogAPIBaseURL string `env:"CATALOG_API_BASE_URL,required" validate:"required,url"`
	LandingSlug       string `env:"LANDING_SLUG,required" validate:"required"`
	ListPageSize      int    `env:"LIST_PAGE_SIZE" envDefault:"200" validate:"gt=0"`

	DefaultTermMonths         int     `env:"DEFAULT_TERM_MONTHS" envDefault:"24" validate:"gt=0"`
	DefaultDownPaymentPercent float64 `env:"DEFAULT_DOWN_PAYMENT_PERCENT" envDefault:"0" validate:"gte=0,lte=100"`

	MaxCartItems     int     `env:"MAX_CART_ITEMS" envDefault:"5" validate:"gt=0"`
	CartQuotaCeiling float64 `env:"CART_QUOTA_CEILING" envDefault:"600" validate:"gt=0"`
	MaxCompareItems  int     `env:"MAX_COMPARE_ITEMS" envDefault:"3" validate:"gt=1"`

	StoreProvider        string `env:"STORE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	SessionStoreProvider string `env:"SESSION_STORE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	RedisAddr            string `env:"REDIS_ADDR" envDefault:"localhost:6379" validate:"required_if=StoreProvider redis,required_if=SessionStoreProvider redis"`
	RedisPassword        string `env:"REDIS_PASSWORD"`
	RedisDB              int    `env:"REDIS_DB" envDefault:"0"`

	BaseURL string `env:"BASE_URL" validate:"omitempty,url"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json multi"`
	Port      string     `env:"PORT" envDefault:"8080"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	catalogURL, err := url.Parse(strings.TrimSpace(c.CatalogAPIBaseURL))
	if err != nil || catalogURL.Hostname() == "" {
		return fmt.Errorf("CATALOG_API_BASE_URL must be a valid absolute URL")
	}

	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil || parsed.Hostname() == "" {
			return fmt.Errorf("BASE_URL must be a valid absolute URL")
		}
		if !isLocalHost(parsed.Hostname()) && !strings.EqualFold(parsed.Scheme, "https") {
			return fmt.Errorf("BASE_URL must use https outside local development")
		}
	}

	return nil
}

func isLocalHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
