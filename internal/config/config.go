package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"project-timer/internal/logging"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Config holds all configuration options for the project timer
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Timer       TimerConfig       `yaml:"timer"`
	Behavior    BehaviorConfig    `yaml:"behavior"`
	Display     DisplayConfig     `yaml:"display"`
	Logging     LoggingConfig     `yaml:"logging"`
	Application ApplicationConfig `yaml:"application"`
}

// StorageConfig selects and tunes the persistence backend
type StorageConfig struct {
	Backend        string        `yaml:"backend" env:"PT_STORAGE"`
	Dir            string        `yaml:"dir" env:"PT_DATA_DIR"`
	Filename       string        `yaml:"filename" env:"PT_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"PT_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"PT_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"PT_DIR_PERMISSIONS"`
}

// TimerConfig holds tick and calendar settings
type TimerConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" env:"PT_TICK_INTERVAL"`
	WeekStart    string        `yaml:"week_start" env:"PT_WEEK_START"`
}

// BehaviorConfig holds the error policy
type BehaviorConfig struct {
	Strict        bool `yaml:"strict" env:"PT_STRICT"`
	MaxNameLength int  `yaml:"max_name_length" env:"PT_MAX_NAME_LENGTH"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat    string `yaml:"time_format" env:"PT_TIME_FORMAT"`
	RunningStatus string `yaml:"running_status" env:"PT_RUNNING_STATUS"`
	BarWidth      int    `yaml:"bar_width" env:"PT_BAR_WIDTH"`
}

// LoggingConfig holds log level and rotation settings
type LoggingConfig struct {
	Debug      bool   `yaml:"debug" env:"PT_DEBUG"`
	File       string `yaml:"file" env:"PT_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"PT_LOG_MAX_SIZE"`
	MaxBackups int    `yaml:"max_backups" env:"PT_LOG_MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" env:"PT_LOG_MAX_AGE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"PT_APP_TIMEOUT"`
	Notify  bool          `yaml:"notify" env:"PT_NOTIFY"`
}

// DefaultDir returns ~/.pt, or .pt when the home directory is unknown
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pt"
	}
	return filepath.Join(homeDir, ".pt")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			Dir:            DefaultDir(),
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Timer: TimerConfig{
			TickInterval: time.Second,
			WeekStart:    "sunday",
		},
		Behavior: BehaviorConfig{
			Strict:        false,
			MaxNameLength: 255,
		},
		Display: DisplayConfig{
			TimeFormat:    "2006-01-02 15:04",
			RunningStatus: "running",
			BarWidth:      20,
		},
		Logging: LoggingConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Notify:  true,
		},
	}
}

// GetStoragePath returns the full path of the data file. An empty filename
// picks the backend's default.
func (c *Config) GetStoragePath() string {
	name := c.Storage.Filename
	if name == "" {
		if c.Storage.Backend == BackendJSON {
			name = "projects.json"
		} else {
			name = "pt.db"
		}
	}
	return filepath.Join(c.Storage.Dir, name)
}

// WeekStart returns the configured first day of the week
func (c *Config) WeekStart() time.Weekday {
	wd, err := ParseWeekday(c.Timer.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return wd
}

// LoggingOptions converts the logging section for logging.Configure
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Debug:      c.Logging.Debug,
		File:       c.Logging.File,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
	}
}

// ParseWeekday accepts a weekday name, its three-letter prefix or 0-6
// counted from Sunday
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return time.Sunday, fmt.Errorf("weekday %d out of range 0-6", n)
		}
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// LoadFromEnvironment loads configuration from PT_* environment variables.
// Unparseable values are ignored.
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if backend := os.Getenv("PT_STORAGE"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}
	if dir := os.Getenv("PT_DATA_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("PT_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if v := os.Getenv("PT_QUERY_TIMEOUT"); v != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(v, c.Storage.QueryTimeout)
	}
	if v := os.Getenv("PT_WRITE_TIMEOUT"); v != "" {
		c.Storage.WriteTimeout = ParseDurationWithFallback(v, c.Storage.WriteTimeout)
	}
	if v := os.Getenv("PT_DIR_PERMISSIONS"); v != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(v, 8, c.Storage.DirPermissions)
	}

	// Timer configuration
	if v := os.Getenv("PT_TICK_INTERVAL"); v != "" {
		c.Timer.TickInterval = ParseDurationWithFallback(v, c.Timer.TickInterval)
	}
	if v := os.Getenv("PT_WEEK_START"); v != "" {
		c.Timer.WeekStart = v
	}

	// Behavior configuration
	if v := os.Getenv("PT_STRICT"); v != "" {
		c.Behavior.Strict = ParseBoolWithFallback(v, c.Behavior.Strict)
	}
	if v := os.Getenv("PT_MAX_NAME_LENGTH"); v != "" {
		c.Behavior.MaxNameLength = ParseIntWithFallback(v, c.Behavior.MaxNameLength)
	}

	// Display configuration
	if v := os.Getenv("PT_TIME_FORMAT"); v != "" {
		c.Display.TimeFormat = v
	}
	if v := os.Getenv("PT_RUNNING_STATUS"); v != "" {
		c.Display.RunningStatus = v
	}
	if v := os.Getenv("PT_BAR_WIDTH"); v != "" {
		c.Display.BarWidth = ParseIntWithFallback(v, c.Display.BarWidth)
	}

	// Logging configuration
	if v := os.Getenv("PT_DEBUG"); v != "" {
		c.Logging.Debug = ParseBoolWithFallback(v, c.Logging.Debug)
	}
	if v := os.Getenv("PT_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("PT_LOG_MAX_SIZE"); v != "" {
		c.Logging.MaxSizeMB = ParseIntWithFallback(v, c.Logging.MaxSizeMB)
	}
	if v := os.Getenv("PT_LOG_MAX_BACKUPS"); v != "" {
		c.Logging.MaxBackups = ParseIntWithFallback(v, c.Logging.MaxBackups)
	}
	if v := os.Getenv("PT_LOG_MAX_AGE"); v != "" {
		c.Logging.MaxAgeDays = ParseIntWithFallback(v, c.Logging.MaxAgeDays)
	}

	// Application configuration
	if v := os.Getenv("PT_APP_TIMEOUT"); v != "" {
		c.Application.Timeout = ParseDurationWithFallback(v, c.Application.Timeout)
	}
	if v := os.Getenv("PT_NOTIFY"); v != "" {
		c.Application.Notify = ParseBoolWithFallback(v, c.Application.Notify)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendJSON:
	default:
		return &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q, expected sqlite or json", c.Storage.Backend)}
	}
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Timer.TickInterval <= 0 {
		return &ConfigError{Field: "timer.tick_interval", Message: "tick interval must be positive"}
	}
	if _, err := ParseWeekday(c.Timer.WeekStart); err != nil {
		return &ConfigError{Field: "timer.week_start", Message: err.Error()}
	}

	if c.Behavior.MaxNameLength < 1 {
		return &ConfigError{Field: "behavior.max_name_length", Message: "maximum name length must be at least 1"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	if c.Display.RunningStatus == "" {
		return &ConfigError{Field: "display.running_status", Message: "running status text cannot be empty"}
	}
	if c.Display.BarWidth < 5 {
		return &ConfigError{Field: "display.bar_width", Message: "bar width must be at least 5"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
