package rotlog

// Logger instance methods for logging at different levels.
// Each calls log directly so the reported source position is the caller's.

// Debug logs a message at debug level.
func (l *Logger) Debug(parts ...any) {
	l.log(1, sinkAll, LevelDebug, "", parts)
}

// Info logs a message at info level.
func (l *Logger) Info(parts ...any) {
	l.log(1, sinkAll, LevelInfo, "", parts)
}

// Warn logs a message at warning level.
func (l *Logger) Warn(parts ...any) {
	l.log(1, sinkAll, LevelWarn, "", parts)
}

// Error logs a message at error level.
func (l *Logger) Error(parts ...any) {
	l.log(1, sinkAll, LevelError, "", parts)
}

// Log writes a line at level with an optional trace tag.
func (l *Logger) Log(level int64, trace string, parts ...any) {
	l.log(1, sinkAll, level, trace, parts)
}

// LogDepth is Log for wrappers: depth extra frames are skipped when
// locating the source position.
func (l *Logger) LogDepth(depth int, level int64, trace string, parts ...any) {
	l.log(1+depth, sinkAll, level, trace, parts)
}

// Raw writes parts verbatim as one line, without timestamp, level tag or
// source position. It is not level gated; level only selects console color.
func (l *Logger) Raw(level int64, parts ...any) {
	l.raw(sinkAll, level, parts)
}

// Console writes a line to the console sink only, even when a file sink is
// enabled. It is gated by the console threshold.
func (l *Logger) Console(level int64, trace string, parts ...any) {
	l.log(1, sinkConsole, level, trace, parts)
}

// ConsoleRaw is Raw for the console sink only.
func (l *Logger) ConsoleRaw(level int64, parts ...any) {
	l.raw(sinkConsole, level, parts)
}

// Tracer logs with a fixed trace tag
type Tracer struct {
	l   *Logger
	tag string
}

// Trace returns a Tracer that tags every line with tag
func (l *Logger) Trace(tag string) Tracer {
	return Tracer{l: l, tag: tag}
}

// Debug logs a tagged message at debug level.
func (t Tracer) Debug(parts ...any) {
	t.l.log(1, sinkAll, LevelDebug, t.tag, parts)
}

// Info logs a tagged message at info level.
func (t Tracer) Info(parts ...any) {
	t.l.log(1, sinkAll, LevelInfo, t.tag, parts)
}

// Warn logs a tagged message at warning level.
func (t Tracer) Warn(parts ...any) {
	t.l.log(1, sinkAll, LevelWarn, t.tag, parts)
}

// Error logs a tagged message at error level.
func (t Tracer) Error(parts ...any) {
	t.l.log(1, sinkAll, LevelError, t.tag, parts)
}
