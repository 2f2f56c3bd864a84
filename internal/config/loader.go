package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configPath string
}

// NewLoader creates a loader reading PT_CONFIG or ~/.pt/config.yaml
func NewLoader() *Loader {
	path := os.Getenv("PT_CONFIG")
	if path == "" {
		path = filepath.Join(DefaultDir(), "config.yaml")
	}
	return NewLoaderWithPath(path)
}

// NewLoaderWithPath creates a loader reading the YAML file at path. An empty
// path skips the file.
func NewLoaderWithPath(path string) *Loader {
	return &Loader{
		config:     NewConfig(),
		configPath: path,
	}
}

// ConfigPath returns the YAML file the loader reads
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML file, if present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if err := l.config.Validate(); err != nil {
		return nil, err
	}
	return l.config, nil
}

// loadFile merges the YAML file over the defaults. A missing file is fine.
func (l *Loader) loadFile() error {
	if l.configPath == "" {
		return nil
	}
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ConfigError{Field: "config", Message: err.Error()}
	}
	if err := yaml.Unmarshal(data, l.config); err != nil {
		return &ConfigError{Field: "config", Message: "invalid YAML in " + l.configPath + ": " + err.Error()}
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes cfg as YAML to the loader's path
func (l *Loader) Save(cfg *Config) error {
	if l.configPath == "" {
		return &ConfigError{Field: "config", Message: "no configuration file path"}
	}
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.configPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(l.configPath, data, 0644)
}

// YAML renders the configuration in the config file format
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	Backend  *string
	DataDir  *string
	Filename *string

	// Timer overrides
	TickInterval *time.Duration
	WeekStart    *string

	// Behavior overrides
	Strict *bool

	// Logging overrides
	Debug   *bool
	LogFile *string

	// Application overrides
	Timeout *time.Duration
	Notify  *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Backend != nil {
		config.Storage.Backend = *overrides.Backend
	}
	if overrides.DataDir != nil {
		config.Storage.Dir = *overrides.DataDir
	}
	if overrides.Filename != nil {
		config.Storage.Filename = *overrides.Filename
	}

	if overrides.TickInterval != nil {
		config.Timer.TickInterval = *overrides.TickInterval
	}
	if overrides.WeekStart != nil {
		config.Timer.WeekStart = *overrides.WeekStart
	}

	if overrides.Strict != nil {
		config.Behavior.Strict = *overrides.Strict
	}

	if overrides.Debug != nil {
		config.Logging.Debug = *overrides.Debug
	}
	if overrides.LogFile != nil {
		config.Logging.File = *overrides.LogFile
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Notify != nil {
		config.Application.Notify = *overrides.Notify
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
