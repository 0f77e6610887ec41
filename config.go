package rotlog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Basic settings
	Name             string `toml:"name"`      // Base name for log files, empty uses the executable name
	Directory        string `toml:"directory"` // Created if missing
	AlwaysMarkSource bool   `toml:"always_mark_source"`

	// Console sink
	EnableConsole bool   `toml:"enable_console"`
	ConsoleLevel  int64  `toml:"console_level"`
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"
	ConsoleColor  bool   `toml:"console_color"`

	// File sink
	EnableFile   bool  `toml:"enable_file"`
	FileLevel    int64 `toml:"file_level"`
	MaxFileBytes int64 `toml:"max_file_bytes"` // Clamped to [1 KiB, 1 GiB]
	MaxFileCount int64 `toml:"max_file_count"` // Clamped to [1, 1000]

	// Writer
	FlushIntervalMs  int64 `toml:"flush_interval_ms"`  // Worker wake interval when idle
	MaxWriteFailures int64 `toml:"max_write_failures"` // Failed batches before the pending batch is dropped

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Self-log to stderr when no console sink
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// Basic settings
	Name:             "",
	Directory:        "./Logs",
	AlwaysMarkSource: false,

	// Console sink
	EnableConsole: true,
	ConsoleLevel:  LevelInfo,
	ConsoleTarget: "stdout",
	ConsoleColor:  true,

	// File sink
	EnableFile:   true,
	FileLevel:    LevelInfo,
	MaxFileBytes: DefaultFileBytes,
	MaxFileCount: DefaultFileCount,

	// Writer
	FlushIntervalMs:  defaultFlushInterval.Milliseconds(),
	MaxWriteFailures: defaultMaxWriteFailures,

	// Internal error handling
	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [log] table of a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	// A missing file leaves the defaults in place
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "log.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.normalize()

	return cfg, nil
}

// extractConfig copies values found by the loader into the Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate rejects values that cannot be repaired by clamping
func (c *Config) validate() error {
	if c.EnableFile && strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty when file output is enabled")
	}

	if strings.ContainsAny(c.Name, `/\`) {
		return fmtErrorf("name must not contain path separators: '%s'", c.Name)
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if c.FlushIntervalMs <= 0 {
		return fmtErrorf("flush_interval_ms must be positive: %d", c.FlushIntervalMs)
	}

	if c.MaxWriteFailures < 0 {
		return fmtErrorf("max_write_failures cannot be negative: %d", c.MaxWriteFailures)
	}

	return nil
}

// normalize clamps levels and file limits into their supported ranges
func (c *Config) normalize() {
	c.ConsoleLevel = clampLevel(c.ConsoleLevel)
	c.FileLevel = clampLevel(c.FileLevel)
	c.MaxFileBytes = clampFileBytes(c.MaxFileBytes)
	c.MaxFileCount = clampFileCount(c.MaxFileCount)
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

func clampLevel(level int64) int64 {
	return min(max(level, LevelDebug), LevelError)
}

func clampFileBytes(n int64) int64 {
	return min(max(n, MinFileBytes), MaxFileBytes)
}

func clampFileCount(n int64) int64 {
	return min(max(n, MinFileCount), MaxFileCount)
}
