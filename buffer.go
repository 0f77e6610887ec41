package rotlog

// logBuffer is the FIFO of rendered lines waiting for the writer.
// It is not synchronized; Logger.mu guards every access.
type logBuffer struct {
	lines []string
}

func (b *logBuffer) push(line string) {
	b.lines = append(b.lines, line)
}

// swap hands over all pending lines and leaves the buffer empty
func (b *logBuffer) swap() []string {
	lines := b.lines
	b.lines = nil
	return lines
}

// requeue puts unwritten lines back ahead of anything enqueued since the swap
func (b *logBuffer) requeue(lines []string) {
	if len(lines) == 0 {
		return
	}
	merged := make([]string, 0, len(lines)+len(b.lines))
	merged = append(merged, lines...)
	merged = append(merged, b.lines...)
	b.lines = merged
}

func (b *logBuffer) len() int {
	return len(b.lines)
}
