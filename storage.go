package rotlog

import (
	"io"
	"os"
	"path/filepath"
	"sort"
)

// fileSystem is the set of file operations the writer depends on
type fileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(name string) ([]os.DirEntry, error)
	OpenFile(name string, flag int, perm os.FileMode) (logFile, error)
	Remove(name string) error
	Stat(name string) (os.FileInfo, error)
}

// logFile is an open log file as seen by the writer
type logFile interface {
	io.Writer
	Stat() (os.FileInfo, error)
	Truncate(size int64) error
	Close() error
}

// osFS implements fileSystem on the operating system
type osFS struct{}

func (osFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }
func (osFS) ReadDir(name string) ([]os.DirEntry, error)   { return os.ReadDir(name) }
func (osFS) Remove(name string) error                     { return os.Remove(name) }
func (osFS) Stat(name string) (os.FileInfo, error)        { return os.Stat(name) }

func (osFS) OpenFile(name string, flag int, perm os.FileMode) (logFile, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ensureDirectory makes dir absolute and creates it recursively
func ensureDirectory(fs fileSystem, dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmtErrorf("failed to resolve log directory '%s': %w", dir, err)
	}
	if err := fs.MkdirAll(absDir, 0755); err != nil {
		return "", fmtErrorf("failed to create log directory '%s': %w", absDir, err)
	}
	return absDir, nil
}

// discoverLogFiles lists regular files in dir written by earlier sessions of
// the same base name, oldest first. Names embed a zero-padded timestamp, so
// lexicographic order is creation order.
func discoverLogFiles(fs fileSystem, namer *rotationNamer) ([]string, error) {
	entries, err := fs.ReadDir(namer.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmtErrorf("failed to read log directory '%s': %w", namer.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if namer.matches(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, filepath.Join(namer.dir, name))
	}
	return files, nil
}

// openAppend opens path for appending, creating it if needed, and returns its current size
func openAppend(fs fileSystem, path string) (logFile, int64, error) {
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, 0, err
	}
	var size int64
	if fi, errStat := f.Stat(); errStat == nil {
		size = fi.Size()
	}
	return f, size, nil
}

// appendMarker appends a single marker line to path, best effort
func appendMarker(fs fileSystem, path, marker string) error {
	f, _, err := openAppend(fs, path)
	if err != nil {
		return err
	}
	_, err = io.WriteString(f, marker+"\n")
	return combineErrors(err, f.Close())
}

// markerNext is appended to a full file and names its successor
func markerNext(next string) string {
	return nextMarkerPrefix + next + markerSuffix
}

// markerPrevious opens a new file and names its predecessor
func markerPrevious(previous string) string {
	return previousMarkerPrefix + previous + markerSuffix
}
