// Package config provides run configuration for propcheck.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/nomagicln/propcheck/pkg/logging"
)

// RetryFactor is how many draws the runner may spend per required passing trial.
// It absorbs rejection sampling by constraints.
const RetryFactor = 100

// MaxMinimumTests is the largest MinimumTests whose draw budget fits in an int.
const MaxMinimumTests = math.MaxInt / RetryFactor

// RunConfig controls one property test execution.
type RunConfig struct {
	// MinimumTests is the number of passing trials required for success.
	MinimumTests int `yaml:"minimum_tests"`

	// LogLevel gates what is written to the log sink.
	LogLevel logging.Level `yaml:"log_level"`

	// ContinueAfterFailure keeps running trials after the first failure.
	ContinueAfterFailure bool `yaml:"continue_after_failure,omitempty"`

	// Minimize enables shrinking of failing cases.
	Minimize bool `yaml:"minimize"`

	// MaxMinimizationDepth bounds the shrink search recursion.
	MaxMinimizationDepth int `yaml:"max_minimization_depth"`

	// Seed makes a run reproducible. Zero picks a fresh seed.
	Seed uint64 `yaml:"seed,omitempty"`
}

// Default returns the stock configuration: 100 tests, failures logged,
// minimization on with depth 3.
func Default() RunConfig {
	return RunConfig{
		MinimumTests:         100,
		LogLevel:             logging.Failures,
		Minimize:             true,
		MaxMinimizationDepth: 3,
	}
}

// MaxTests is the overall draw budget.
func (c RunConfig) MaxTests() int {
	return c.MinimumTests * RetryFactor
}

// Validate checks that the configuration can drive a run.
func (c RunConfig) Validate() error {
	if c.MinimumTests < 1 {
		return &InvalidConfigError{Field: "minimum_tests", Reason: "must be at least 1"}
	}
	if c.MinimumTests > MaxMinimumTests {
		return &InvalidConfigError{Field: "minimum_tests", Reason: fmt.Sprintf("cannot exceed %d", MaxMinimumTests)}
	}
	if c.MaxMinimizationDepth < 0 {
		return &InvalidConfigError{Field: "max_minimization_depth", Reason: "cannot be negative"}
	}
	if c.LogLevel < logging.None || c.LogLevel > logging.All {
		return &InvalidConfigError{Field: "log_level", Reason: fmt.Sprintf("unknown level %d", int(c.LogLevel))}
	}
	return nil
}

// Load reads a YAML configuration file. Fields missing from the file keep
// their default values.
func Load(path string) (RunConfig, error) {
	cfg := Default()

	resolved, err := ValidateAndResolvePath(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file '%s': %w", resolved, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", resolved, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file '%s': %w", resolved, err)
	}

	return cfg, nil
}

// LoadOrDefault loads path if it exists and returns the defaults otherwise.
func LoadOrDefault(path string) (RunConfig, error) {
	cfg, err := Load(path)
	var pathErr *PathValidationError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Wrapped, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes cfg as YAML, atomically.
func Save(path string, cfg RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write atomically by writing to temp file first
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// GetConfigDir returns the platform-specific configuration directory.
func GetConfigDir() (string, error) {
	// Check for override environment variable
	if dir := os.Getenv("PROPCHECK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		// macOS: ~/Library/Application Support/propcheck
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support", "propcheck")

	case "windows":
		// Windows: %APPDATA%\propcheck
		appData := os.Getenv("APPDATA")
		if appData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			appData = filepath.Join(homeDir, "AppData", "Roaming")
		}
		baseDir = filepath.Join(appData, "propcheck")

	default:
		// Linux/Unix: ~/.config/propcheck (XDG Base Directory Specification)
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			xdgConfig = filepath.Join(homeDir, ".config")
		}
		baseDir = filepath.Join(xdgConfig, "propcheck")
	}

	return baseDir, nil
}

// DefaultConfigPath is config.yaml inside the config directory.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultHistoryPath is the run history database inside the config directory.
func DefaultHistoryPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// InvalidConfigError reports a field that fails validation.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
