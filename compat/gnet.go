package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/rotlog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

const gnetTrace = "gnet"

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps rotlog.Logger to implement gnet logging.Logger interface
type GnetAdapter struct {
	logger       *rotlog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *rotlog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	if a.logger.Enabled(rotlog.LevelDebug) {
		a.logger.LogDepth(1, rotlog.LevelDebug, gnetTrace, fmt.Sprintf(format, args...))
	}
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	if a.logger.Enabled(rotlog.LevelInfo) {
		a.logger.LogDepth(1, rotlog.LevelInfo, gnetTrace, fmt.Sprintf(format, args...))
	}
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	if a.logger.Enabled(rotlog.LevelWarn) {
		a.logger.LogDepth(1, rotlog.LevelWarn, gnetTrace, fmt.Sprintf(format, args...))
	}
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	if a.logger.Enabled(rotlog.LevelError) {
		a.logger.LogDepth(1, rotlog.LevelError, gnetTrace, fmt.Sprintf(format, args...))
	}
}

// Fatalf logs at error level and triggers fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.LogDepth(1, rotlog.LevelError, gnetTrace, "fatal: ", msg)

	// Ensure log is flushed before exit
	_ = a.logger.Flush(100 * time.Millisecond)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
