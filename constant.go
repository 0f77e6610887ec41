package rotlog

import (
	"time"
)

// Log level constants
const (
	LevelDebug int64 = -4
	LevelInfo  int64 = 0
	LevelWarn  int64 = 4
	LevelError int64 = 8
)

// File sink limits
const (
	// Per-file size bounds and default
	MinFileBytes     int64 = 1024
	MaxFileBytes     int64 = 1024 * 1024 * 1024
	DefaultFileBytes int64 = 5 * 1024 * 1024
	// Retained file count bounds and default
	MinFileCount     int64 = 1
	MaxFileCount     int64 = 1000
	DefaultFileCount int64 = 100
)

// Writer policy
const (
	// Worker wakes at least this often to drain the buffer
	defaultFlushInterval = time.Second
	// Failed batches tolerated before the pending batch is dropped
	defaultMaxWriteFailures int64 = 5
)

// File naming and markers
const (
	logFileExt           = ".log"
	fileTimeLayout       = "20060102_150405"
	lineTimeLayout       = "2006-01-02 15:04:05.000"
	markerDecoration     = "****************"
	nextMarkerPrefix     = markerDecoration + " See next logs in "
	previousMarkerPrefix = markerDecoration + " See previous logs in "
	markerSuffix         = " " + markerDecoration
	// Trace tag carried by lines the logger writes about itself
	internalTrace = "logger"
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
	// Resolution of the cached clock used for line timestamps
	clockResolution = time.Millisecond
)
