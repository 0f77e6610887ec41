package rotlog

import (
	"os"
	"time"
)

// internalReporter receives the writer's own diagnostics
type internalReporter interface {
	logInternal(level int64, parts ...any)
}

// fileWriter owns the active log file and the rotation history.
// Only the worker goroutine touches it once the logger is started.
type fileWriter struct {
	fs      fileSystem
	namer   *rotationNamer
	history fileHistory

	maxBytes    int64
	maxFiles    int
	maxFailures int64

	current       string
	size          int64
	pendingMarker string // written at the top of current before the next line
	failures      int64  // consecutive failed batches

	report internalReporter
	state  *State
}

// begin selects the first file of the session
func (w *fileWriter) begin(now time.Time) {
	w.current = w.namer.next(now)
	w.size = 0
	w.state.CurrentFile.Store(w.current)
	w.state.CurrentSize.Store(0)
}

// writeBatch writes lines in order, rotating each time the current file
// fills. On error it returns the lines that were not written and moves to a
// new file, so a path that stays unusable does not stall the writer.
func (w *fileWriter) writeBatch(lines []string, now func() time.Time) ([]string, error) {
	for len(lines) > 0 {
		if w.size >= w.maxBytes {
			w.rotate(now())
		}
		n, err := w.appendLines(lines)
		lines = lines[n:]
		if err != nil {
			w.rotate(now())
			return lines, err
		}
	}
	return nil, nil
}

// appendLines opens the current file and appends lines until they run out or
// the file reaches maxBytes. At least one line is written when the file opens
// below the limit.
func (w *fileWriter) appendLines(lines []string) (written int, err error) {
	f, size, err := openAppend(w.fs, w.current)
	if err != nil {
		w.report.logInternal(LevelWarn, "open log file (", w.current, ") failed: ", err)
		return 0, err
	}
	defer func() {
		if errClose := f.Close(); errClose != nil && err == nil {
			err = errClose
		}
	}()

	w.size = size
	w.state.CurrentSize.Store(w.size)
	if w.size >= w.maxBytes {
		return 0, nil
	}

	if w.pendingMarker != "" {
		if err = w.writeLine(f, w.pendingMarker); err != nil {
			return 0, err
		}
		w.pendingMarker = ""
	}

	for _, line := range lines {
		if err = w.writeLine(f, line); err != nil {
			return written, err
		}
		written++
		if w.size >= w.maxBytes {
			break
		}
	}
	return written, nil
}

// writeLine appends one line, retrying the unwritten remainder once.
// A line that still fails is cut back out of the file so it can be
// written again whole.
func (w *fileWriter) writeLine(f logFile, line string) error {
	data := make([]byte, 0, len(line)+1)
	data = append(data, line...)
	data = append(data, '\n')

	start := w.size
	n, err := f.Write(data)
	if err != nil {
		var m int
		m, err = f.Write(data[n:])
		n += m
	}

	if err != nil {
		if n > 0 {
			if errTrunc := f.Truncate(start); errTrunc == nil {
				n = 0
			} else {
				w.report.logInternal(LevelWarn, "truncate log file (", w.current, ") failed: ", errTrunc)
			}
		}
		w.size = start + int64(n)
		w.state.CurrentSize.Store(w.size)
		w.report.logInternal(LevelWarn, "write log file (", w.current, ") failed, bad IO: ", err)
		return err
	}

	w.size = start + int64(n)
	w.state.CurrentSize.Store(w.size)
	return nil
}

// rotate retires the current file into the history and switches to a new one.
// The retired file gets a forward marker and the new one a backward marker.
func (w *fileWriter) rotate(now time.Time) {
	old := w.current
	next := w.namer.next(now)

	if w.size > 0 {
		w.history.push(old)
		w.enforceRetention()
		if err := appendMarker(w.fs, old, markerNext(next)); err != nil {
			w.report.logInternal(LevelWarn, "write log file (", old, ") failed, bad IO: ", err)
		}
		w.pendingMarker = markerPrevious(old)
	} else {
		w.removeEmpty(old)
		w.pendingMarker = ""
		if prev := w.history.last(); prev != "" {
			w.pendingMarker = markerPrevious(prev)
		}
	}

	w.current = next
	w.size = 0
	w.state.CurrentFile.Store(next)
	w.state.CurrentSize.Store(0)
	w.state.TotalRotations.Add(1)
}

// enforceRetention deletes the oldest history entries beyond maxFiles
func (w *fileWriter) enforceRetention() {
	for _, path := range w.history.trim(w.maxFiles) {
		if err := w.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			w.report.logInternal(LevelWarn, "remove log file (", path, ") failed: ", err)
			continue
		}
		w.state.TotalDeletions.Add(1)
		w.report.logInternal(LevelInfo, "remove log file (", path, ") success")
	}
	w.state.RetainedFiles.Store(int64(w.history.len()))
}

// removeEmpty deletes path if it exists with no content
func (w *fileWriter) removeEmpty(path string) {
	fi, err := w.fs.Stat(path)
	if err != nil || !fi.Mode().IsRegular() || fi.Size() > 0 {
		return
	}
	w.report.logInternal(LevelInfo, "try remove empty log file (", path, ")")
	if err := w.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		w.report.logInternal(LevelWarn, "remove log file (", path, ") failed: ", err)
	}
}

// close releases the session's file; an empty active file is removed
func (w *fileWriter) close() {
	if w.current != "" {
		w.removeEmpty(w.current)
	}
}
