package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognised by ApplyEnv and Load.
const (
	EnvConfig        = "FOODTRUCK_CONFIG"
	EnvHome          = "FOODTRUCK_HOME"
	EnvBaseURL       = "FOODTRUCK_BASE_URL"
	EnvFetchLimit    = "FOODTRUCK_FETCH_LIMIT"
	EnvAppToken      = "FOODTRUCK_APP_TOKEN"
	EnvTimeout       = "FOODTRUCK_TIMEOUT"
	EnvPageSize      = "FOODTRUCK_PAGE_SIZE"
	EnvSort          = "FOODTRUCK_SORT"
	EnvRowNumbers    = "FOODTRUCK_ROW_NUMBERS"
	EnvMaxWidth      = "FOODTRUCK_MAX_WIDTH"
	EnvOutput        = "FOODTRUCK_OUTPUT"
	EnvSkipMalformed = "FOODTRUCK_SKIP_MALFORMED"
	EnvTimezone      = "FOODTRUCK_TIMEZONE"
	EnvLogLevel      = "FOODTRUCK_LOG_LEVEL"
	EnvLogFormat     = "FOODTRUCK_LOG_FORMAT"
	EnvLogFile       = "FOODTRUCK_LOG_FILE"
)

const defaultDotEnv = ".env"

// ErrInvalidEnv is returned when an environment variable cannot be parsed.
var ErrInvalidEnv = errors.New("invalid environment variable")

// LoadDotEnv loads variables from a dotenv file without overriding variables
// already present in the process environment. An empty path means ".env" in
// the working directory; a missing file is ignored.
func LoadDotEnv(path string) error {
	if path == "" {
		path = defaultDotEnv
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any FOODTRUCK_* variables that are set.
func ApplyEnv(cfg *Config) error {
	setString(&cfg.Upstream.BaseURL, EnvBaseURL)
	setString(&cfg.Upstream.AppToken, EnvAppToken)
	setString(&cfg.Display.Sort, EnvSort)
	setString(&cfg.Display.Format, EnvOutput)
	setString(&cfg.Filter.Timezone, EnvTimezone)
	setString(&cfg.Logging.Level, EnvLogLevel)
	setString(&cfg.Logging.Format, EnvLogFormat)
	setString(&cfg.Logging.File, EnvLogFile)

	if err := setInt(&cfg.Upstream.FetchLimit, EnvFetchLimit); err != nil {
		return err
	}
	if err := setInt(&cfg.Display.PageSize, EnvPageSize); err != nil {
		return err
	}
	if err := setInt(&cfg.Display.MaxWidth, EnvMaxWidth); err != nil {
		return err
	}
	if err := setBool(&cfg.Display.RowNumbers, EnvRowNumbers); err != nil {
		return err
	}
	if err := setBool(&cfg.Filter.SkipMalformed, EnvSkipMalformed); err != nil {
		return err
	}
	return setDuration(&cfg.Upstream.Timeout, EnvTimeout)
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func setInt(dst *int, name string) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %w", ErrInvalidEnv, name, v, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, name string) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %w", ErrInvalidEnv, name, v, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, name string) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %w", ErrInvalidEnv, name, v, err)
	}
	*dst = d
	return nil
}
