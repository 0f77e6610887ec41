package rotlog

import (
	"sync/atomic"
)

// State encapsulates the runtime state of the logger. Flags are written
// under Logger.mu and read lock-free on the logging fast path.
type State struct {
	// Sink flags and thresholds
	ConsoleEnabled atomic.Bool
	FileEnabled    atomic.Bool
	ConsoleLevel   atomic.Int64
	FileLevel      atomic.Int64
	MarkSource     atomic.Bool

	// Writer lifecycle
	Started        atomic.Bool
	WorkerAlive    atomic.Bool // Worker has started and is draining
	Stopping       atomic.Bool // Shutdown requested
	ShutdownCalled atomic.Bool

	// Writer mirrors, owned by the worker
	CurrentFile         atomic.Value // stores string
	CurrentSize         atomic.Int64
	RetainedFiles       atomic.Int64
	ConsecutiveFailures atomic.Int64

	// Counters
	LinesEnqueued  atomic.Uint64
	LinesWritten   atomic.Uint64
	LinesDropped   atomic.Uint64
	FailedBatches  atomic.Uint64
	TotalRotations atomic.Uint64
	TotalDeletions atomic.Uint64
}

// Stats is a point-in-time snapshot of logger activity
type Stats struct {
	LinesEnqueued       uint64
	LinesWritten        uint64
	LinesDropped        uint64
	FailedBatches       uint64
	Rotations           uint64
	Deletions           uint64
	ConsecutiveFailures int64
	CurrentFile         string
	CurrentSize         int64
	RetainedFiles       int64
	WorkerAlive         bool
}

// Stats returns a snapshot of the logger's counters and writer state
func (l *Logger) Stats() Stats {
	current, _ := l.state.CurrentFile.Load().(string)
	return Stats{
		LinesEnqueued:       l.state.LinesEnqueued.Load(),
		LinesWritten:        l.state.LinesWritten.Load(),
		LinesDropped:        l.state.LinesDropped.Load(),
		FailedBatches:       l.state.FailedBatches.Load(),
		Rotations:           l.state.TotalRotations.Load(),
		Deletions:           l.state.TotalDeletions.Load(),
		ConsecutiveFailures: l.state.ConsecutiveFailures.Load(),
		CurrentFile:         current,
		CurrentSize:         l.state.CurrentSize.Load(),
		RetainedFiles:       l.state.RetainedFiles.Load(),
		WorkerAlive:         l.state.WorkerAlive.Load(),
	}
}
