package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/pagefeed/internal/fetch"
	"github.com/rshade/pagefeed/internal/pagination"
)

// Defaults written by `pagefeed config init` and used when no file exists.
const (
	DefaultScrollThreshold = 3
	DefaultUserAgent       = "pagefeed"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"

	configFileName = "config.yaml"
)

// Environment variables that override file values.
const (
	EnvHome      = "PAGEFEED_HOME"
	EnvBaseURL   = "PAGEFEED_BASE_URL"
	EnvPageSize  = "PAGEFEED_PAGE_SIZE"
	EnvLogLevel  = "PAGEFEED_LOG_LEVEL"
	EnvLogFormat = "PAGEFEED_LOG_FORMAT"
)

// Validation errors.
var (
	ErrEmptyBaseURL       = errors.New("api.base_url must not be empty")
	ErrBadBaseURL         = errors.New("api.base_url must be an absolute http(s) URL")
	ErrNegativeRateLimit  = errors.New("api.rate_limit must be >= 0")
	ErrNegativeThreshold  = errors.New("view.scroll_threshold must be >= 0")
	ErrUnknownConfigKey   = errors.New("unknown config key")
	ErrInvalidConfigValue = errors.New("invalid config value")
)

// Config is the full pagefeed configuration.
type Config struct {
	API     APIConfig     `yaml:"api"     json:"api"`
	View    ViewConfig    `yaml:"view"    json:"view"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	path string
}

// APIConfig configures the collection endpoint and the fetch client.
type APIConfig struct {
	BaseURL   string  `yaml:"base_url"   json:"base_url"`
	PageSize  int     `yaml:"page_size"  json:"page_size"`
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"`
	UserAgent string  `yaml:"user_agent" json:"user_agent"`
}

// ViewConfig configures the view controller.
type ViewConfig struct {
	// ScrollThreshold is the distance to the bottom, in rows, that triggers a load.
	ScrollThreshold int `yaml:"scroll_threshold" json:"scroll_threshold"`
	// ResetOnLoad discards the active filter and sort on every page load.
	ResetOnLoad bool `yaml:"reset_on_load" json:"reset_on_load"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"  json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file"   json:"file"`
}

// New returns the configuration loaded from the default config file with
// environment overrides applied. Unreadable files fall back to defaults.
func New() *Config {
	cfg := Default()
	if path, err := DefaultConfigPath(); err == nil {
		cfg.path = path
		if _, statErr := os.Stat(path); statErr == nil {
			_ = ShallowMergeYAML(cfg, path)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   fetch.DefaultBaseURL,
			PageSize:  pagination.DefaultPageSize,
			UserAgent: DefaultUserAgent,
		},
		View: ViewConfig{
			ScrollThreshold: DefaultScrollThreshold,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// Path returns the file this config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// ApplyEnv overrides fields from environment variables found by lookup.
// Unparseable numeric values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvPageSize); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.PageSize = n
		}
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
}

// Validate checks the configuration for values the client cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return ErrEmptyBaseURL
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrBadBaseURL, c.API.BaseURL)
	}
	if err = pagination.ValidatePageSize(c.API.PageSize); err != nil {
		return fmt.Errorf("api.page_size: %w", err)
	}
	if c.API.RateLimit < 0 {
		return ErrNegativeRateLimit
	}
	if c.View.ScrollThreshold < 0 {
		return ErrNegativeThreshold
	}
	return nil
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Get returns the value at a dotted key such as "api.page_size".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.page_size":
		return strconv.Itoa(c.API.PageSize), nil
	case "api.rate_limit":
		return strconv.FormatFloat(c.API.RateLimit, 'f', -1, 64), nil
	case "api.user_agent":
		return c.API.UserAgent, nil
	case "view.scroll_threshold":
		return strconv.Itoa(c.View.ScrollThreshold), nil
	case "view.reset_on_load":
		return strconv.FormatBool(c.View.ResetOnLoad), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
}

// Set assigns value to a dotted key, parsing numbers and booleans.
//
//nolint:gocognit // One branch per key keeps the mapping explicit.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api.base_url":
		c.API.BaseURL = value
	case "api.page_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %w", ErrInvalidConfigValue, key, err)
		}
		c.API.PageSize = n
	case "api.rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w for %s: %w", ErrInvalidConfigValue, key, err)
		}
		c.API.RateLimit = f
	case "api.user_agent":
		c.API.UserAgent = value
	case "view.scroll_threshold":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %w", ErrInvalidConfigValue, key, err)
		}
		c.View.ScrollThreshold = n
	case "view.reset_on_load":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %w", ErrInvalidConfigValue, key, err)
		}
		c.View.ResetOnLoad = b
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
	return nil
}

// DefaultConfigPath returns $PAGEFEED_HOME/config.yaml or ~/.pagefeed/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
