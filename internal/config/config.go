package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "PIM"

// Config is the client configuration, read from PIM_* environment variables.
type Config struct {
	// GraphQLURL is the GraphQL endpoint all queries and mutations go to.
	GraphQLURL string `envconfig:"GRAPHQL_URL" default:"http://localhost:4000/graphql"`
	// APIURL is the base URL of the REST API (view templates, workspaces).
	APIURL         string        `envconfig:"API_URL" default:"http://localhost:4000"`
	OrganizationID string        `envconfig:"ORGANIZATION_ID"`
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"30s"`
	// RetryCount is the number of extra attempts after a retryable failure.
	RetryCount int    `envconfig:"RETRY_COUNT" default:"0"`
	Debug      bool   `envconfig:"DEBUG"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	BrandCacheSize int           `envconfig:"BRAND_CACHE_SIZE" default:"128"`
	BrandCacheTTL  time.Duration `envconfig:"BRAND_CACHE_TTL" default:"5m"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var conf Config
	if err := envconfig.Process(envPrefix, &conf); err != nil {
		return nil, fmt.Errorf("failed to process config env vars: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validateURL("GRAPHQL_URL", c.GraphQLURL); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validateURL("API_URL", c.APIURL); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Timeout <= 0 {
		result = multierror.Append(result, errors.New("TIMEOUT must be positive"))
	}
	if c.RetryCount < 0 {
		result = multierror.Append(result, errors.New("RETRY_COUNT must not be negative"))
	}
	if c.BrandCacheSize <= 0 {
		result = multierror.Append(result, errors.New("BRAND_CACHE_SIZE must be positive"))
	}
	if c.BrandCacheTTL < 0 {
		result = multierror.Append(result, errors.New("BRAND_CACHE_TTL must not be negative"))
	}

	return result.ErrorOrNil()
}

func validateURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: unsupported scheme %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: missing host", name)
	}
	return nil
}
