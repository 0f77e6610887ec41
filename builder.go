package rotlog

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger, applies the configuration and starts it.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger()

	// ApplyConfig handles validation and sink setup
	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	if err := logger.Start(); err != nil {
		return nil, err
	}

	return logger, nil
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.cfg.Clone(), nil
}

// Level sets the threshold of both sinks.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.ConsoleLevel = level
	b.cfg.FileLevel = level
	return b
}

// LevelString sets the threshold of both sinks from a level name.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	return b.Level(levelVal)
}

// Name sets the base name of log files.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// AlwaysMarkSource attaches the source position to every line.
func (b *Builder) AlwaysMarkSource(enable bool) *Builder {
	b.cfg.AlwaysMarkSource = enable
	return b
}

// EnableConsole toggles console output.
func (b *Builder) EnableConsole(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

// ConsoleLevel sets the console threshold.
func (b *Builder) ConsoleLevel(level int64) *Builder {
	b.cfg.ConsoleLevel = level
	return b
}

// ConsoleTarget sets the console stream, "stdout" or "stderr".
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// ConsoleColor toggles ANSI coloring of console lines.
func (b *Builder) ConsoleColor(enable bool) *Builder {
	b.cfg.ConsoleColor = enable
	return b
}

// EnableFile toggles file output.
func (b *Builder) EnableFile(enable bool) *Builder {
	b.cfg.EnableFile = enable
	return b
}

// FileLevel sets the file threshold.
func (b *Builder) FileLevel(level int64) *Builder {
	b.cfg.FileLevel = level
	return b
}

// MaxFileBytes sets the size at which a file is rotated.
func (b *Builder) MaxFileBytes(size int64) *Builder {
	b.cfg.MaxFileBytes = size
	return b
}

// MaxFileKB sets the rotation size in kilobytes.
func (b *Builder) MaxFileKB(size int64) *Builder {
	b.cfg.MaxFileBytes = size * 1024
	return b
}

// MaxFileMB sets the rotation size in megabytes.
func (b *Builder) MaxFileMB(size int64) *Builder {
	b.cfg.MaxFileBytes = size * 1024 * 1024
	return b
}

// MaxFileCount sets how many rotated files are kept.
func (b *Builder) MaxFileCount(count int64) *Builder {
	b.cfg.MaxFileCount = count
	return b
}

// FlushIntervalMs sets how often the writer drains an idle buffer.
func (b *Builder) FlushIntervalMs(interval int64) *Builder {
	b.cfg.FlushIntervalMs = interval
	return b
}

// MaxWriteFailures sets how many consecutive failed batches are retried before dropping.
func (b *Builder) MaxWriteFailures(count int64) *Builder {
	b.cfg.MaxWriteFailures = count
	return b
}

// InternalErrorsToStderr sends the logger's own diagnostics to stderr when the console is off.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Override applies key=value overrides on top of the values set so far.
func (b *Builder) Override(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.cfg.Override(overrides...)
	return b
}
