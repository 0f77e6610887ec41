package rotlog

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// rotationNamer derives log file paths from the base name, directory and a
// millisecond timestamp. Generated names are strictly increasing, so sorting
// names lexicographically yields creation order.
type rotationNamer struct {
	dir     string
	base    string
	pattern *regexp.Regexp
	last    time.Time
}

// newRotationNamer creates a namer for the directory and base name
func newRotationNamer(dir, base string) *rotationNamer {
	return &rotationNamer{
		dir:     dir,
		base:    base,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `_(\d{8}_\d{6})_(\d{3})\.log$`),
	}
}

// next returns the path for a new file created at now.
// A timestamp not later than the last issued one is bumped by a millisecond.
func (n *rotationNamer) next(now time.Time) string {
	now = now.Truncate(time.Millisecond)
	if !n.last.IsZero() && !now.After(n.last) {
		now = n.last.Add(time.Millisecond)
	}
	n.last = now
	return filepath.Join(n.dir, n.fileName(now))
}

// fileName formats <base>_<YYYYMMDD>_<HHMMSS>_<mmm>.log
func (n *rotationNamer) fileName(t time.Time) string {
	return fmt.Sprintf("%s_%s_%03d%s", n.base, t.Format(fileTimeLayout), t.Nanosecond()/int(time.Millisecond), logFileExt)
}

// matches reports whether name belongs to this base name's rotation set
func (n *rotationNamer) matches(name string) bool {
	return n.pattern.MatchString(name)
}

// parseTime extracts the creation timestamp embedded in a matching file name
func (n *rotationNamer) parseTime(name string) (time.Time, bool) {
	m := n.pattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(fileTimeLayout, m[1], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	ms, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, false
	}
	return t.Add(time.Duration(ms) * time.Millisecond), true
}

// observe moves the namer past an existing file so new names sort after it
func (n *rotationNamer) observe(name string) {
	if t, ok := n.parseTime(filepath.Base(name)); ok && t.After(n.last) {
		n.last = t
	}
}
