package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/cloo-solutions/suggestscore/internal/domain"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Debug       bool   `envconfig:"DEBUG" default:"false"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	SentryDSN      string `envconfig:"SENTRY_DSN"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`

	VendorBaseURL string        `envconfig:"VENDOR_BASE_URL" default:"https://completion.amazon.com"`
	VendorTimeout time.Duration `envconfig:"VENDOR_TIMEOUT" default:"5s"`

	// Ceiling on simultaneous vendor calls within one estimation
	MaxConcurrency int `envconfig:"MAX_CONCURRENCY" default:"8"`

	// Budget for a whole estimation, seed call and all expansions
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("SUGGESTSCORE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values envconfig cannot express as tags. Failures are
// validation errors.
func (c *Config) Validate() error {
	if c.MaxConcurrency < 1 {
		return invalid(fmt.Sprintf("MAX_CONCURRENCY must be at least 1, got %d", c.MaxConcurrency))
	}
	if c.VendorTimeout <= 0 {
		return invalid("VENDOR_TIMEOUT must be positive")
	}
	if c.RequestTimeout <= 0 {
		return invalid("REQUEST_TIMEOUT must be positive")
	}
	u, err := url.Parse(c.VendorBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid(fmt.Sprintf("VENDOR_BASE_URL %q is not an absolute URL", c.VendorBaseURL))
	}
	return nil
}

func invalid(msg string) error {
	return domain.NewDomainError(domain.ErrCodeValidation, "invalid config: "+msg)
}

func (c *Config) HasSentry() bool {
	return c.SentryDSN != ""
}

func (c *Config) IsDev() bool {
	return c.Environment == "development" || c.Environment == "dev"
}
