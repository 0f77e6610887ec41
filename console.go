package rotlog

import (
	"io"

	"github.com/muesli/termenv"
)

// ConsoleSink receives rendered lines for synchronous terminal output.
// The level is a styling hint; the line itself is final.
type ConsoleSink interface {
	WriteLine(line string, level int64) error
}

// ColorTable selects the foreground color for each level. A nil entry falls
// back to the default for that level.
type ColorTable struct {
	Debug termenv.Color
	Info  termenv.Color
	Warn  termenv.Color
	Error termenv.Color
}

// DefaultColors returns white, green, yellow and red for debug through error
func DefaultColors() ColorTable {
	return ColorTable{
		Debug: termenv.ANSIWhite,
		Info:  termenv.ANSIGreen,
		Warn:  termenv.ANSIYellow,
		Error: termenv.ANSIRed,
	}
}

// withDefaults fills nil entries from DefaultColors
func (t ColorTable) withDefaults() ColorTable {
	d := DefaultColors()
	if t.Debug == nil {
		t.Debug = d.Debug
	}
	if t.Info == nil {
		t.Info = d.Info
	}
	if t.Warn == nil {
		t.Warn = d.Warn
	}
	if t.Error == nil {
		t.Error = d.Error
	}
	return t
}

func (t ColorTable) forLevel(level int64) termenv.Color {
	switch {
	case level >= LevelError:
		return t.Error
	case level >= LevelWarn:
		return t.Warn
	case level >= LevelInfo:
		return t.Info
	default:
		return t.Debug
	}
}

// Console writes lines to an io.Writer, optionally wrapped in ANSI color
type Console struct {
	w        io.Writer
	useColor bool
	colors   ColorTable
}

// NewConsole creates a console sink over w
func NewConsole(w io.Writer, useColor bool, colors ColorTable) *Console {
	return &Console{
		w:        w,
		useColor: useColor,
		colors:   colors.withDefaults(),
	}
}

// WriteLine writes one line followed by a newline
func (c *Console) WriteLine(line string, level int64) error {
	if c.useColor {
		line = termenv.String(line).Foreground(c.colors.forLevel(level)).String()
	}
	_, err := io.WriteString(c.w, line+"\n")
	return err
}
