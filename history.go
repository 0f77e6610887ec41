package rotlog

// fileHistory is the ordered record of closed log files, oldest first, that
// count against the retention cap. The active file is not part of it.
type fileHistory struct {
	files []string
}

func (h *fileHistory) push(path string) {
	h.files = append(h.files, path)
}

func (h *fileHistory) len() int {
	return len(h.files)
}

// last returns the newest retained file, or "" if there is none
func (h *fileHistory) last() string {
	if len(h.files) == 0 {
		return ""
	}
	return h.files[len(h.files)-1]
}

// trim removes entries beyond limit from the front and returns them oldest first
func (h *fileHistory) trim(limit int) []string {
	if limit < 0 || len(h.files) <= limit {
		return nil
	}
	excess := len(h.files) - limit
	evicted := make([]string, excess)
	copy(evicted, h.files[:excess])
	h.files = append(h.files[:0], h.files[excess:]...)
	return evicted
}

// snapshot returns a copy of the retained paths
func (h *fileHistory) snapshot() []string {
	out := make([]string, len(h.files))
	copy(out, h.files)
	return out
}
