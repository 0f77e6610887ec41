package rotlog

import (
	"fmt"
	"strconv"
	"strings"
)

// Override applies string key-value overrides to the configuration.
// Each override should be in the format "key=value". All overrides are
// attempted and the errors reported together.
//
// Example:
//
//	cfg := rotlog.DefaultConfig()
//	err := cfg.Override(
//	    "directory=/var/log/app",
//	    "file_level=debug",
//	    "max_file_count=20",
//	)
func (c *Config) Override(overrides ...string) error {
	var errs []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := applyConfigField(c, key, value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return combineConfigErrors(errs)
	}

	return c.validate()
}

// combineConfigErrors combines multiple configuration errors into a single error
func combineConfigErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}

	var sb strings.Builder
	sb.WriteString("log: multiple configuration errors:")
	for i, err := range errs {
		errMsg := strings.TrimPrefix(err.Error(), "log: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Basic settings
	case "name":
		cfg.Name = value
	case "directory":
		cfg.Directory = value
	case "always_mark_source":
		return setBool(&cfg.AlwaysMarkSource, key, value)

	// Console sink
	case "enable_console":
		return setBool(&cfg.EnableConsole, key, value)
	case "console_level":
		return setLevel(&cfg.ConsoleLevel, key, value)
	case "console_target":
		cfg.ConsoleTarget = value
	case "console_color":
		return setBool(&cfg.ConsoleColor, key, value)

	// File sink
	case "enable_file":
		return setBool(&cfg.EnableFile, key, value)
	case "file_level":
		return setLevel(&cfg.FileLevel, key, value)
	case "max_file_bytes":
		return setInt(&cfg.MaxFileBytes, key, value)
	case "max_file_count":
		return setInt(&cfg.MaxFileCount, key, value)

	// Writer
	case "flush_interval_ms":
		return setInt(&cfg.FlushIntervalMs, key, value)
	case "max_write_failures":
		return setInt(&cfg.MaxWriteFailures, key, value)

	// Internal error handling
	case "internal_errors_to_stderr":
		return setBool(&cfg.InternalErrorsToStderr, key, value)

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}

func setBool(dst *bool, key, value string) error {
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return fmtErrorf("invalid boolean value for %s '%s': %w", key, value, err)
	}
	*dst = boolVal
	return nil
}

func setInt(dst *int64, key, value string) error {
	intVal, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
	}
	*dst = intVal
	return nil
}

// setLevel accepts both numeric and named levels
func setLevel(dst *int64, key, value string) error {
	if numVal, err := strconv.ParseInt(value, 10, 64); err == nil {
		*dst = numVal
		return nil
	}
	levelVal, err := Level(value)
	if err != nil {
		return fmtErrorf("invalid %s value '%s': %w", key, value, err)
	}
	*dst = levelVal
	return nil
}
