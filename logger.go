package rotlog

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/go-timecache"
	"github.com/muesli/termenv"
)

// Logger is the core struct that encapsulates all logger functionality.
// Console and file sinks are each configured at most once; Start launches
// the single writer goroutine and Shutdown joins it.
type Logger struct {
	currentConfig atomic.Value // stores *Config
	state         State

	// mu guards the buffer, sink configuration and writer state transitions
	mu                sync.Mutex
	buf               logBuffer
	console           ConsoleSink
	configApplied     bool
	consoleConfigured bool
	fileConfigured    bool
	markConfigured    bool
	writer            *fileWriter
	stopChan          chan struct{}
	done              chan struct{}

	wake             chan struct{}      // 1-slot enqueue signal
	flushRequestChan chan chan struct{} // Channel to request a flush
	flushMutex       sync.Mutex         // Protect concurrent Flush calls

	fs    fileSystem
	clock atomic.Pointer[timecache.TimeCache]
}

// NewLogger creates a new Logger instance with default settings and no sinks
func NewLogger() *Logger {
	l := &Logger{
		wake:             make(chan struct{}, 1),
		flushRequestChan: make(chan chan struct{}, 1),
		fs:               osFS{},
	}

	cfg := DefaultConfig()
	cfg.normalize()
	l.currentConfig.Store(cfg)

	l.state.ConsoleLevel.Store(LevelInfo)
	l.state.FileLevel.Store(LevelInfo)
	l.state.CurrentFile.Store("")

	return l
}

// ApplyConfig validates cfg and configures the sinks it enables.
// It can be applied once; sinks it enables cannot be configured again.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	l.mu.Lock()
	if l.configApplied {
		l.mu.Unlock()
		return fmtErrorf("configuration %w", ErrAlreadyConfigured)
	}
	l.configApplied = true
	cfg = cfg.Clone()
	cfg.normalize()
	l.currentConfig.Store(cfg)
	l.mu.Unlock()

	var err error
	if cfg.AlwaysMarkSource {
		err = combineErrors(err, l.ConfigureAlwaysMarkSource())
	}
	if cfg.EnableConsole {
		err = combineErrors(err, l.ConfigureConsole(cfg.ConsoleLevel, cfg.ConsoleColor, DefaultColors()))
	}
	if cfg.EnableFile {
		err = combineErrors(err, l.ConfigureFile(cfg.FileLevel, cfg.Directory, cfg.MaxFileBytes, cfg.MaxFileCount))
	}
	return err
}

// GetConfig returns a copy of current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// ConfigureConsole enables console output on the configured target (stdout by default).
// Color is turned off when the environment asks for no color.
func (l *Logger) ConfigureConsole(level int64, useColor bool, colors ColorTable) error {
	out := os.Stdout
	if l.getConfig().ConsoleTarget == "stderr" {
		out = os.Stderr
	}
	if useColor && termenv.EnvNoColor() {
		useColor = false
	}
	return l.ConfigureConsoleSink(level, NewConsole(out, useColor, colors))
}

// ConfigureConsoleSink enables console output through a caller supplied sink
func (l *Logger) ConfigureConsoleSink(level int64, sink ConsoleSink) error {
	if sink == nil {
		return fmtErrorf("console sink cannot be nil")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.consoleConfigured {
		return fmtErrorf("console output %w", ErrAlreadyConfigured)
	}
	l.consoleConfigured = true
	l.console = sink
	l.state.ConsoleLevel.Store(clampLevel(level))
	l.state.ConsoleEnabled.Store(true)
	return nil
}

// ConfigureFile enables rotating file output in directory. Files left by
// earlier runs with the same base name are adopted into the retention count
// and the oldest beyond maxFiles are deleted. Out of range limits are clamped.
func (l *Logger) ConfigureFile(level int64, directory string, maxBytes, maxFiles int64) error {
	l.mu.Lock()
	if l.fileConfigured {
		l.mu.Unlock()
		return fmtErrorf("file output %w", ErrAlreadyConfigured)
	}
	l.fileConfigured = true
	l.mu.Unlock()

	w, err := l.newFileWriter(directory, maxBytes, maxFiles)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.fileConfigured = false
		return err
	}
	l.writer = w
	l.state.FileLevel.Store(clampLevel(level))
	l.state.FileEnabled.Store(true)

	// Configured after Start: the worker was not launched then
	if l.state.Started.Load() && !l.state.ShutdownCalled.Load() {
		l.startWorker()
	}
	return nil
}

// ConfigureAlwaysMarkSource attaches the source position to lines of every level
func (l *Logger) ConfigureAlwaysMarkSource() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.markConfigured {
		return fmtErrorf("source marking %w", ErrAlreadyConfigured)
	}
	l.markConfigured = true
	l.state.MarkSource.Store(true)
	return nil
}

// Start begins log processing. Safe to call multiple times.
// Without a file sink only the cached clock is started; a file sink
// configured later starts the writer itself.
func (l *Logger) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger already shut down")
	}
	if !l.state.Started.CompareAndSwap(false, true) {
		return nil
	}

	l.clock.Store(timecache.NewWithResolution(clockResolution))

	if l.writer != nil {
		l.startWorker()
	}
	return nil
}

// startWorker opens the first file of the session and launches the writer goroutine.
// Caller must hold mu.
func (l *Logger) startWorker() {
	if l.done != nil {
		return
	}

	cfg := l.getConfig()
	l.writer.maxFailures = cfg.MaxWriteFailures
	l.writer.begin(l.now())

	l.stopChan = make(chan struct{})
	l.done = make(chan struct{})
	l.state.WorkerAlive.Store(true)
	go l.processLogs(l.writer, time.Duration(cfg.FlushIntervalMs)*time.Millisecond, l.stopChan, l.done)
}

// Shutdown stops accepting file lines, lets the writer finish its current
// batch and write whatever is still buffered, then joins it. An optional
// timeout bounds the wait; without one Shutdown waits for the writer.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	l.mu.Lock()
	l.state.Stopping.Store(true)
	stop, done := l.stopChan, l.done
	l.mu.Unlock()

	var finalErr error
	if stop != nil {
		close(stop)
		if len(timeout) > 0 && timeout[0] > 0 {
			select {
			case <-done:
			case <-time.After(timeout[0]):
				finalErr = fmtErrorf("writer did not exit within timeout (%v)", timeout[0])
			}
		} else {
			<-done
		}
	}

	if c := l.clock.Swap(nil); c != nil {
		c.Stop()
	}

	return finalErr
}

// Flush asks the writer to drain the buffer now and waits for completion or timeout
func (l *Logger) Flush(timeout time.Duration) error {
	l.flushMutex.Lock()
	defer l.flushMutex.Unlock()

	l.mu.Lock()
	done := l.done
	running := l.state.WorkerAlive.Load() && !l.state.Stopping.Load()
	l.mu.Unlock()

	if !running {
		return fmtErrorf("writer not running")
	}

	confirmChan := make(chan struct{})
	deadline := time.After(timeout)

	select {
	case l.flushRequestChan <- confirmChan:
	case <-done:
		return nil // Writer exited after its final drain
	case <-deadline:
		return fmtErrorf("failed to send flush request to writer (%v)", timeout)
	}

	select {
	case <-confirmChan:
		return nil
	case <-done:
		return nil
	case <-deadline:
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// now reads the cached clock once started, the wall clock before that
func (l *Logger) now() time.Time {
	if c := l.clock.Load(); c != nil {
		return c.CachedTime()
	}
	return time.Now()
}

// newFileWriter prepares the directory, adopts existing files and enforces the retention cap
func (l *Logger) newFileWriter(directory string, maxBytes, maxFiles int64) (*fileWriter, error) {
	name := l.getConfig().Name
	if name == "" {
		name = executableBaseName()
	}
	maxBytes = clampFileBytes(maxBytes)
	maxFiles = clampFileCount(maxFiles)

	dir, err := ensureDirectory(l.fs, directory)
	if err != nil {
		return nil, err
	}

	w := &fileWriter{
		fs:          l.fs,
		namer:       newRotationNamer(dir, name),
		maxBytes:    maxBytes,
		maxFiles:    int(maxFiles),
		maxFailures: defaultMaxWriteFailures,
		report:      l,
		state:       &l.state,
	}

	l.logInternal(LevelInfo, "log files were stored in (", dir, "), prefix (", name,
		"), max size (", formatByteSize(maxBytes), "), max count (", maxFiles, ")")

	files, err := discoverLogFiles(l.fs, w.namer)
	if err != nil {
		l.logInternal(LevelWarn, "list log files in (", dir, ") failed: ", err)
	}
	for _, f := range files {
		w.history.push(f)
		w.namer.observe(f)
	}
	w.enforceRetention()

	return w, nil
}
