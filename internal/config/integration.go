package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/foodtruckfinder/internal/logging"
)

// GlobalConfig holds the global configuration instance.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects GlobalConfig

// SetGlobalConfig installs cfg as the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	GlobalConfig = cfg
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetGlobalConfig returns the global configuration, installing defaults if
// nothing has been set yet.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := GlobalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if GlobalConfig == nil {
		GlobalConfig = New()
	}
	return GlobalConfig
}

// GetConfigDir returns the path to the foodtruckfinder configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".foodtruckfinder"), nil
}

// EnsureLogDir ensures the directory for the configured log file exists.
// If no log file is configured, it does nothing.
func (lc LoggingConfig) EnsureLogDir() error {
	if lc.File == "" {
		return nil
	}
	logDir := filepath.Dir(lc.File)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}

// ToLoggingConfig converts LoggingConfig to logging.Config.
//
// If File is set, Output becomes "file"; otherwise it is "stderr".
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
