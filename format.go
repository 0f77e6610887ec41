package rotlog

import (
	"encoding"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// Renderer is implemented by values that append their own log text
type Renderer interface {
	AppendLog(buf []byte) []byte
}

// sourcePos is the call site attached to Warn/Error lines
type sourcePos struct {
	file     string
	line     int
	function string
}

// dumper renders composite values on a single line for log output
var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// renderLine formats
// <YYYY-MM-DD HH:MM:SS.mmm> [<Level>] [trace=<trace> | ]<payload>[\t[<file>, <line>, <func>]]
func renderLine(ts time.Time, level int64, trace string, parts []any, pos *sourcePos) string {
	buf := make([]byte, 0, 128)
	buf = ts.AppendFormat(buf, lineTimeLayout)
	buf = append(buf, " ["...)
	buf = append(buf, levelName(level)...)
	buf = append(buf, "] "...)

	if trace != "" {
		buf = append(buf, "trace="...)
		buf = append(buf, trace...)
		buf = append(buf, " | "...)
	}

	buf = appendParts(buf, parts)

	if pos != nil {
		buf = append(buf, "\t["...)
		buf = append(buf, pos.file...)
		buf = append(buf, ", "...)
		buf = strconv.AppendInt(buf, int64(pos.line), 10)
		buf = append(buf, ", "...)
		buf = append(buf, pos.function...)
		buf = append(buf, ']')
	}

	return string(buf)
}

// renderRaw concatenates parts with no metadata
func renderRaw(parts []any) string {
	return string(appendParts(make([]byte, 0, 64), parts))
}

// appendParts concatenates parts without separators
func appendParts(buf []byte, parts []any) []byte {
	for _, part := range parts {
		buf = appendValue(buf, part)
	}
	return buf
}

// appendValue converts a value to its log text.
// Types without a known rendering fall back to go-spew.
func appendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case Renderer:
		return val.AppendLog(buf)
	case []byte:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int8:
		return strconv.AppendInt(buf, int64(val), 10)
	case int16:
		return strconv.AppendInt(buf, int64(val), 10)
	case int32:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint8:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint16:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint32:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', 3, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', 3, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case nil:
		return append(buf, "nil"...)
	case time.Time:
		return val.AppendFormat(buf, lineTimeLayout)
	case time.Duration:
		return append(buf, val.String()...)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	case encoding.TextMarshaler:
		if text, err := val.MarshalText(); err == nil {
			return append(buf, text...)
		}
	}
	return append(buf, dumper.Sprintf("%+v", v)...)
}

// callerPosition captures the source position skip frames above its caller
func callerPosition(skip int) *sourcePos {
	pc := make([]uintptr, 1)
	if runtime.Callers(skip+2, pc) == 0 { // +2 skips Callers and callerPosition
		return &sourcePos{file: "???", function: "???"}
	}
	frame, _ := runtime.CallersFrames(pc).Next()
	return &sourcePos{
		file:     shortFile(frame.File),
		line:     frame.Line,
		function: shortFunction(frame.Function),
	}
}

// shortFile keeps the last directory and the file name
func shortFile(path string) string {
	dir, file := filepath.Split(path)
	if dir == "" {
		return file
	}
	return filepath.Base(dir) + "/" + file
}

// shortFunction strips the import path and package from a function name
func shortFunction(name string) string {
	name = filepath.Base(name)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
