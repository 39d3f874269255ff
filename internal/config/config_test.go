package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/foodtruckfinder/internal/config"
	"github.com/rshade/foodtruckfinder/internal/foodtruck"
	"github.com/rshade/foodtruckfinder/internal/logging"
	"github.com/rshade/foodtruckfinder/internal/socrata"
)

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// isolate points the config home at an empty directory and runs the test
// from another empty directory so no stray config or .env file leaks in.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvConfig, "")
	t.Chdir(t.TempDir())
}

func TestNew_Defaults(t *testing.T) {
	cfg := config.New()

	assert.Equal(t, socrata.DefaultBaseURL, cfg.Upstream.BaseURL)
	assert.Equal(t, 1000, cfg.Upstream.FetchLimit)
	assert.Equal(t, config.DefaultTimeout, cfg.Upstream.Timeout)
	assert.Equal(t, 10, cfg.Display.PageSize)
	assert.True(t, cfg.Display.RowNumbers)
	assert.Equal(t, 30, cfg.Display.MaxWidth)
	assert.Equal(t, "table", cfg.Display.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestShallowMergeYAML_FieldOverride(t *testing.T) {
	target := config.New()
	overlay := writeOverlay(t, `
display:
  page_size: 25
upstream:
  timeout: 5s
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 25, target.Display.PageSize)
	assert.Equal(t, 5*time.Second, target.Upstream.Timeout)

	// Fields not named in the overlay keep their values.
	assert.True(t, target.Display.RowNumbers)
	assert.Equal(t, "table", target.Display.Format)
	assert.Equal(t, socrata.DefaultBaseURL, target.Upstream.BaseURL)
	assert.Equal(t, "warn", target.Logging.Level)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := config.New()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
logging:
  level: debug
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "debug", target.Logging.Level)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := config.New()
	overlay := writeOverlay(t, "# nothing here\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, config.New(), target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		assert.Error(t, config.ShallowMergeYAML(nil, "whatever.yaml"))
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		overlay := writeOverlay(t, "display: [unclosed")
		assert.Error(t, config.ShallowMergeYAML(config.New(), overlay))
	})

	t.Run("wrong type", func(t *testing.T) {
		overlay := writeOverlay(t, "display:\n  page_size: many\n")
		assert.Error(t, config.ShallowMergeYAML(config.New(), overlay))
	})
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	path := writeOverlay(t, `
display:
  page_size: 20
  format: plain
logging:
  level: info
`)
	t.Setenv(config.EnvPageSize, "15")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	// Environment beats file, file beats defaults.
	assert.Equal(t, 15, cfg.Display.PageSize)
	assert.Equal(t, "plain", cfg.Display.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 1000, cfg.Upstream.FetchLimit)
}

func TestLoad_ConfigFromEnvVar(t *testing.T) {
	isolate(t)
	path := writeOverlay(t, "upstream:\n  fetch_limit: 500\n")
	t.Setenv(config.EnvConfig, path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Upstream.FetchLimit)
}

func TestLoad_DefaultFileFromHome(t *testing.T) {
	isolate(t)
	home := os.Getenv(config.EnvHome)
	require.NoError(t, os.WriteFile(filepath.Join(home, config.DefaultConfigFile),
		[]byte("display:\n  max_width: 0\n"), 0600))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Display.MaxWidth)
}

func TestLoad_MissingFiles(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err, "missing default file is not an error")
	assert.Equal(t, config.New(), cfg)

	_, err = config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist, "missing explicit file is an error")
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	// Registered so t.Setenv restores the variable that godotenv sets.
	t.Setenv(config.EnvSort, "")
	require.NoError(t, os.Unsetenv(config.EnvSort))
	require.NoError(t, os.WriteFile(".env", []byte("FOODTRUCK_SORT=name:desc\n"), 0600))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "name:desc", cfg.Display.Sort)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
		want error
	}{
		{"page size not a number", config.EnvPageSize, "ten", config.ErrInvalidEnv},
		{"page size out of range", config.EnvPageSize, "0", config.ErrInvalidConfig},
		{"bad bool", config.EnvRowNumbers, "maybe", config.ErrInvalidEnv},
		{"bad timeout", config.EnvTimeout, "soon", config.ErrInvalidEnv},
		{"unknown format", config.EnvOutput, "csv", config.ErrInvalidConfig},
		{"unknown sort field", config.EnvSort, "rating", config.ErrInvalidConfig},
		{"fetch limit too big", config.EnvFetchLimit, "50001", config.ErrInvalidConfig},
		{"max width too small", config.EnvMaxWidth, "3", config.ErrInvalidConfig},
		{"unknown log level", config.EnvLogLevel, "loud", config.ErrInvalidConfig},
		{"unknown timezone", config.EnvTimezone, "Mars/Olympus", config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.val)

			_, err := config.Load("")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_FilterOverrides(t *testing.T) {
	cfg := config.New()
	cfg.Filter.Day = "Funday"
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)

	cfg = config.New()
	cfg.Filter.Time = "25:00"
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)

	cfg = config.New()
	cfg.Filter.Day = "sat"
	cfg.Filter.Time = "07:30"
	assert.NoError(t, cfg.Validate())
}

func TestFilterConfig_Moment(t *testing.T) {
	// 2024-01-15 was a Monday.
	now := time.Date(2024, time.January, 15, 10, 15, 0, 0, time.UTC)

	t.Run("uses now in the configured zone", func(t *testing.T) {
		f := config.FilterConfig{Timezone: "UTC"}
		m, err := f.Moment(now)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, m.Weekday)
		assert.Equal(t, 10*time.Hour+15*time.Minute, m.Clock)
	})

	t.Run("day and time override", func(t *testing.T) {
		f := config.FilterConfig{Timezone: "UTC", Day: "Saturday", Time: "23:59"}
		m, err := f.Moment(now)
		require.NoError(t, err)
		assert.Equal(t, time.Saturday, m.Weekday)
		assert.Equal(t, 23*time.Hour+59*time.Minute, m.Clock)
	})

	t.Run("bad time", func(t *testing.T) {
		f := config.FilterConfig{Time: "noon"}
		_, err := f.Moment(now)
		assert.ErrorIs(t, err, foodtruck.ErrMalformedTime)
	})
}

func TestFilterConfig_Policy(t *testing.T) {
	assert.Equal(t, foodtruck.MalformedAbort, config.FilterConfig{}.Policy())
	assert.Equal(t, foodtruck.MalformedSkip, config.FilterConfig{SkipMalformed: true}.Policy())
}

func TestRedacted(t *testing.T) {
	cfg := config.New()
	cfg.Upstream.AppToken = "secret"

	red := cfg.Redacted()
	assert.Equal(t, "********", red.Upstream.AppToken)
	assert.Equal(t, "secret", cfg.Upstream.AppToken, "original untouched")
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)
	assert.Equal(t, "debug", got.Level)
	assert.Equal(t, "json", got.Format)

	lc.File = "/tmp/ftf.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/ftf.log", got.File)
}

func TestLoggingConfig_EnsureLogDir(t *testing.T) {
	assert.NoError(t, config.LoggingConfig{}.EnsureLogDir())

	dir := filepath.Join(t.TempDir(), "nested", "logs")
	lc := config.LoggingConfig{File: filepath.Join(dir, "ftf.log")}
	require.NoError(t, lc.EnsureLogDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGlobalConfig(t *testing.T) {
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	cfg := config.GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Same(t, cfg, config.GetGlobalConfig())

	custom := config.New()
	custom.Display.PageSize = 3
	config.SetGlobalConfig(custom)
	assert.Same(t, custom, config.GetGlobalConfig())

	config.ResetGlobalConfigForTest()
	assert.NotSame(t, custom, config.GetGlobalConfig())
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv(config.EnvHome, "/opt/ftf")
	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/opt/ftf", dir)

	home := t.TempDir()
	t.Setenv(config.EnvHome, "")
	t.Setenv("HOME", home)
	dir, err = config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".foodtruckfinder"), dir)
}
