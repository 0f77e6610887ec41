package rotlog

import (
	"fmt"
	"os"
)

// sinks selects the outputs a call may reach
type sinks uint8

const (
	sinkConsole sinks = 1 << iota
	sinkFile
	sinkAll = sinkConsole | sinkFile
)

// Enabled reports whether a line at level would reach any sink
func (l *Logger) Enabled(level int64) bool {
	return l.consoleAccepts(level) || l.fileAccepts(level)
}

// ConsoleEnabled reports whether the console sink accepts level
func (l *Logger) ConsoleEnabled(level int64) bool {
	return l.consoleAccepts(level)
}

// FileEnabled reports whether the file sink is running and accepts level
func (l *Logger) FileEnabled(level int64) bool {
	return l.fileAccepts(level)
}

func (l *Logger) consoleAccepts(level int64) bool {
	return l.state.ConsoleEnabled.Load() && level >= l.state.ConsoleLevel.Load()
}

func (l *Logger) fileAccepts(level int64) bool {
	return l.fileOpen() && level >= l.state.FileLevel.Load()
}

// fileOpen reports whether the worker is taking new lines
func (l *Logger) fileOpen() bool {
	return l.state.FileEnabled.Load() && l.state.WorkerAlive.Load() && !l.state.Stopping.Load()
}

// log handles the core logging logic. depth is the number of frames between
// the caller to report and log itself.
func (l *Logger) log(depth int, to sinks, level int64, trace string, parts []any) {
	toConsole := to&sinkConsole != 0 && l.consoleAccepts(level)
	toFile := to&sinkFile != 0 && l.fileAccepts(level)
	if !toConsole && !toFile {
		return
	}

	var pos *sourcePos
	if level >= LevelWarn || l.state.MarkSource.Load() {
		pos = callerPosition(depth + 1)
	}

	l.dispatch(renderLine(l.now(), level, trace, parts, pos), level, toConsole, toFile)
}

// raw writes parts verbatim to the selected sinks, ignoring thresholds
func (l *Logger) raw(to sinks, level int64, parts []any) {
	toConsole := to&sinkConsole != 0 && l.state.ConsoleEnabled.Load()
	toFile := to&sinkFile != 0 && l.fileOpen()
	if !toConsole && !toFile {
		return
	}
	l.dispatch(renderRaw(parts), level, toConsole, toFile)
}

// dispatch prints and enqueues a rendered line under the lock
func (l *Logger) dispatch(line string, level int64, toConsole, toFile bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// The worker may have stopped since the lock-free check
	toFile = toFile && l.fileOpen()

	if toConsole {
		l.printConsole(line, level)
	}
	if toFile {
		l.buf.push(line)
		l.state.LinesEnqueued.Add(1)
		l.signal()
	}
}

// printConsole writes to the console sink. Caller must hold mu.
func (l *Logger) printConsole(line string, level int64) {
	if l.console == nil {
		return
	}
	if err := l.console.WriteLine(line, level); err != nil {
		l.internalLog("console write failed: %v\n", err)
	}
}

// signal wakes the worker without blocking
func (l *Logger) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// logInternal reports the logger's own activity. Lines go to the console
// when it accepts the level, else to stderr when enabled, else nowhere.
func (l *Logger) logInternal(level int64, parts ...any) {
	toConsole := l.consoleAccepts(level)
	if !toConsole && !l.getConfig().InternalErrorsToStderr {
		return
	}

	var pos *sourcePos
	if level >= LevelWarn || l.state.MarkSource.Load() {
		pos = callerPosition(1)
	}
	line := renderLine(l.now(), level, internalTrace, parts, pos)

	if toConsole {
		l.mu.Lock()
		l.printConsole(line, level)
		l.mu.Unlock()
		return
	}
	fmt.Fprintln(os.Stderr, line)
}

// internalLog handles writing internal logger diagnostics to stderr, if enabled.
func (l *Logger) internalLog(format string, args ...any) {
	if !l.getConfig().InternalErrorsToStderr {
		return
	}
	fmt.Fprintf(os.Stderr, "log: "+format, args...)
}
