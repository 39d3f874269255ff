package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rshade/foodtruckfinder/internal/cli/pagination"
	"github.com/rshade/foodtruckfinder/internal/foodtruck"
	"github.com/rshade/foodtruckfinder/internal/socrata"
	"github.com/rshade/foodtruckfinder/internal/tui"
)

const (
	// DefaultConfigFile is the file name looked up inside the config directory.
	DefaultConfigFile = "config.yaml"

	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 30 * time.Second

	minFetchLimit = 1
	maxFetchLimit = 50000
)

// ErrInvalidConfig is returned by Validate for any out-of-range setting.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full set of runtime settings.
type Config struct {
	Upstream UpstreamConfig `yaml:"upstream"`
	Display  DisplayConfig  `yaml:"display"`
	Filter   FilterConfig   `yaml:"filter"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// UpstreamConfig configures the Socrata dataset endpoint.
type UpstreamConfig struct {
	BaseURL    string        `yaml:"base_url"`
	FetchLimit int           `yaml:"fetch_limit"`
	AppToken   string        `yaml:"app_token,omitempty"`
	Timeout    time.Duration `yaml:"timeout"`
}

// DisplayConfig configures paging and table rendering.
type DisplayConfig struct {
	PageSize   int    `yaml:"page_size"`
	Sort       string `yaml:"sort,omitempty"`
	RowNumbers bool   `yaml:"row_numbers"`
	MaxWidth   int    `yaml:"max_width"`
	Format     string `yaml:"format"`
}

// FilterConfig configures the open-now filter.
type FilterConfig struct {
	SkipMalformed bool   `yaml:"skip_malformed"`
	Timezone      string `yaml:"timezone,omitempty"`
	Day           string `yaml:"day,omitempty"`
	Time          string `yaml:"time,omitempty"`
}

// LoggingConfig configures diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// New returns a Config populated with defaults.
func New() *Config {
	render := tui.DefaultRenderOptions()
	return &Config{
		Upstream: UpstreamConfig{
			BaseURL:    socrata.DefaultBaseURL,
			FetchLimit: socrata.DefaultLimit,
			Timeout:    DefaultTimeout,
		},
		Display: DisplayConfig{
			PageSize:   pagination.DefaultPageSize,
			RowNumbers: render.RowNumbers,
			MaxWidth:   render.MaxWidth,
			Format:     render.Format,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path, a .env file in
// the working directory and FOODTRUCK_* environment variables, in that order.
// An empty path falls back to $FOODTRUCK_CONFIG and then the default location;
// a missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		dir, err := GetConfigDir()
		if err == nil {
			path = filepath.Join(dir, DefaultConfigFile)
		}
	}

	if path != "" {
		if err := ShallowMergeYAML(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := LoadDotEnv(""); err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting for range and enum violations.
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("%w: upstream.base_url is required", ErrInvalidConfig)
	}
	if c.Upstream.FetchLimit < minFetchLimit || c.Upstream.FetchLimit > maxFetchLimit {
		return fmt.Errorf("%w: upstream.fetch_limit must be between %d and %d, got %d",
			ErrInvalidConfig, minFetchLimit, maxFetchLimit, c.Upstream.FetchLimit)
	}
	if c.Upstream.Timeout < 0 {
		return fmt.Errorf("%w: upstream.timeout must not be negative", ErrInvalidConfig)
	}

	if _, err := pagination.NewDisplayParamsFromFlags(c.Display.PageSize, c.Display.Sort); err != nil {
		return fmt.Errorf("%w: display: %w", ErrInvalidConfig, err)
	}
	if c.Display.MaxWidth != 0 && c.Display.MaxWidth < tui.MinMaxWidth {
		return fmt.Errorf("%w: display.max_width must be 0 or at least %d, got %d",
			ErrInvalidConfig, tui.MinMaxWidth, c.Display.MaxWidth)
	}
	if err := tui.ValidateFormat(c.Display.Format); err != nil {
		return fmt.Errorf("%w: display.format: %w", ErrInvalidConfig, err)
	}

	if _, err := c.Filter.Location(); err != nil {
		return fmt.Errorf("%w: filter.timezone: %w", ErrInvalidConfig, err)
	}
	if c.Filter.Day != "" {
		if _, err := foodtruck.ParseWeekday(c.Filter.Day); err != nil {
			return fmt.Errorf("%w: filter.day: %w", ErrInvalidConfig, err)
		}
	}
	if c.Filter.Time != "" {
		if _, err := foodtruck.ParseClock(c.Filter.Time); err != nil {
			return fmt.Errorf("%w: filter.time: %w", ErrInvalidConfig, err)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q is not recognised", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q is not recognised", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Location resolves the configured timezone. An empty name means the local zone.
func (f FilterConfig) Location() (*time.Location, error) {
	if f.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(f.Timezone)
}

// Moment returns the instant the open-now filter evaluates against. Day and
// Time override the corresponding parts of now, which is first moved into the
// configured timezone.
func (f FilterConfig) Moment(now time.Time) (foodtruck.Moment, error) {
	loc, err := f.Location()
	if err != nil {
		return foodtruck.Moment{}, err
	}
	m := foodtruck.MomentOf(now.In(loc))
	if f.Day != "" {
		day, dayErr := foodtruck.ParseWeekday(f.Day)
		if dayErr != nil {
			return foodtruck.Moment{}, dayErr
		}
		m.Weekday = day
	}
	if f.Time != "" {
		clock, clockErr := foodtruck.ParseClock(f.Time)
		if clockErr != nil {
			return foodtruck.Moment{}, clockErr
		}
		m.Clock = clock
	}
	return m, nil
}

// Policy maps SkipMalformed onto the filter's malformed-row policy.
func (f FilterConfig) Policy() foodtruck.MalformedPolicy {
	if f.SkipMalformed {
		return foodtruck.MalformedSkip
	}
	return foodtruck.MalformedAbort
}

// Redacted returns a copy safe to print, with secrets masked.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Upstream.AppToken != "" {
		out.Upstream.AppToken = "********"
	}
	return &out
}
