package rotlog

import (
	"time"
)

// processLogs is the writer loop running in its own goroutine. It drains the
// buffer when woken by an enqueue, on every tick and on flush requests.
func (l *Logger) processLogs(w *fileWriter, interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	if interval < minWaitTime {
		interval = minWaitTime
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			l.finish(w)
			return

		case <-l.wake:
			l.drainAndWrite(w)

		case <-ticker.C:
			l.drainAndWrite(w)

		case confirmChan := <-l.flushRequestChan:
			l.handleFlushRequest(w, confirmChan)
		}
	}
}

// handleFlushRequest handles an explicit flush request
func (l *Logger) handleFlushRequest(w *fileWriter, confirmChan chan struct{}) {
	l.drainAndWrite(w)
	close(confirmChan) // Signal completion back to the Flush caller
}

// finish marks the worker stopped, writes what is left and releases the file
func (l *Logger) finish(w *fileWriter) {
	l.mu.Lock()
	l.state.WorkerAlive.Store(false)
	l.mu.Unlock()

	l.drainAndWrite(w)

	l.mu.Lock()
	lost := l.buf.swap()
	l.mu.Unlock()
	if len(lost) > 0 {
		l.state.LinesDropped.Add(uint64(len(lost)))
		l.logInternal(LevelWarn, "wrote log file errors, drop count ", len(lost))
	}

	// A flush queued after the last loop iteration is satisfied by the final drain
	select {
	case confirmChan := <-l.flushRequestChan:
		close(confirmChan)
	default:
	}

	w.close()
}

// drainAndWrite takes every buffered line and writes it. A failed batch
// goes back to the front of the buffer until the writer has failed more
// than maxFailures times in a row; then the pending lines are dropped.
func (l *Logger) drainAndWrite(w *fileWriter) {
	l.mu.Lock()
	batch := l.buf.swap()
	l.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	remaining, err := w.writeBatch(batch, l.now)
	l.state.LinesWritten.Add(uint64(len(batch) - len(remaining)))

	if err == nil {
		w.failures = 0
		l.state.ConsecutiveFailures.Store(0)
		return
	}

	w.failures++
	l.state.ConsecutiveFailures.Store(w.failures)
	l.state.FailedBatches.Add(1)

	if w.failures > w.maxFailures {
		l.state.LinesDropped.Add(uint64(len(remaining)))
		l.logInternal(LevelWarn, "wrote log file errors, drop count ", len(remaining))
		return
	}

	l.mu.Lock()
	l.buf.requeue(remaining)
	l.mu.Unlock()
}
