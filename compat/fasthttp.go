package compat

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/rotlog"
	"github.com/valyala/fasthttp"
)

const fasthttpTrace = "fasthttp"

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter sends fasthttp's Printf output to a rotlog.Logger, tagged trace=fasthttp.
// fasthttp has no levels, so the level is guessed from the message.
type FastHTTPAdapter struct {
	logger        *rotlog.Logger
	defaultLevel  int64
	levelDetector func(string) int64
}

func NewFastHTTPAdapter(logger *rotlog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  rotlog.LevelInfo,
		levelDetector: DetectLogLevel,
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level of messages the detector leaves at Info
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector replaces DetectLogLevel
func WithLevelDetector(detector func(string) int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected := a.levelDetector(msg); detected != rotlog.LevelInfo {
			level = detected
		}
	}

	a.logger.LogDepth(1, level, fasthttpTrace, msg)
}

// levelKeywords is checked in order; the first entry with a matching keyword wins
var levelKeywords = []struct {
	level    int64
	keywords []string
}{
	{rotlog.LevelError, []string{"error", "fail", "fatal", "panic", "refused", "broken pipe"}},
	{rotlog.LevelWarn, []string{"warn", "deprecated", "timeout", "too many", "retry"}},
	{rotlog.LevelDebug, []string{"debug", "trace"}},
}

// DetectLogLevel maps a fasthttp message to a level by keyword, Info when nothing matches
func DetectLogLevel(msg string) int64 {
	msg = strings.ToLower(msg)
	for _, entry := range levelKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(msg, kw) {
				return entry.level
			}
		}
	}
	return rotlog.LevelInfo
}
