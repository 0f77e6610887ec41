package rotlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paddedPayload builds a payload so the rendered Info line is exactly 100 bytes
func paddedPayload(i int) string {
	const lineLen = 100
	prefix := len("2006-01-02 15:04:05.000 [Info] ")
	tag := fmt.Sprintf("line-%03d ", i)
	return tag + strings.Repeat("x", lineLen-prefix-len(tag))
}

// TestLogRotation covers one rotation with markers on both sides
func TestLogRotation(t *testing.T) {
	logger, tmpDir := createTestLogger(t, "max_file_bytes=100", "max_file_count=10")
	assert.Equal(t, MinFileBytes, logger.writer.maxBytes, "max_file_bytes is clamped to 1 KiB")

	// 11 lines of 101 bytes fill the first file past 1024 bytes
	const total = 15
	for i := 0; i < total; i++ {
		logger.Info(paddedPayload(i))
	}
	require.NoError(t, logger.Shutdown())

	files := logFiles(t, tmpDir)
	require.Len(t, files, 2)

	first := readLines(t, files[0])
	second := readLines(t, files[1])

	require.Len(t, first, 12)
	assert.Equal(t, markerNext(files[1]), first[len(first)-1])
	assert.Equal(t, markerPrevious(files[0]), second[0])
	assert.Len(t, second, 1+total-11)

	lines := payloads(t, tmpDir)
	require.Len(t, lines, total)
	for i, line := range lines {
		assert.Equal(t, paddedPayload(i), line)
	}
	assert.Equal(t, uint64(1), logger.Stats().Rotations)
}

// TestRotationBoundsFileSize verifies no closed file grows past one line over the limit plus its marker
func TestRotationBoundsFileSize(t *testing.T) {
	logger, tmpDir := createTestLogger(t, "max_file_bytes=1024", "max_file_count=100")

	for i := 0; i < 200; i++ {
		logger.Info(paddedPayload(i))
	}
	require.NoError(t, logger.Shutdown())

	files := logFiles(t, tmpDir)
	require.Greater(t, len(files), 10)

	for _, f := range files[:len(files)-1] {
		fi, err := os.Stat(f)
		require.NoError(t, err)
		limit := int64(1024) + 101 + int64(len(markerNext(f))) + 1
		assert.LessOrEqual(t, fi.Size(), limit, f)
	}

	lines := payloads(t, tmpDir)
	require.Len(t, lines, 200)
	for i, line := range lines {
		assert.Equal(t, paddedPayload(i), line)
	}
}

// TestRetentionPolicy verifies the oldest files are deleted beyond the cap
func TestRetentionPolicy(t *testing.T) {
	logger, tmpDir := createTestLogger(t, "max_file_bytes=1024", "max_file_count=2")

	const total = 60
	for i := 0; i < total; i++ {
		logger.Info(paddedPayload(i))
	}
	require.NoError(t, logger.Shutdown())

	stats := logger.Stats()
	assert.Positive(t, stats.Deletions)
	assert.LessOrEqual(t, stats.RetainedFiles, int64(2))

	// History plus the active file
	files := logFiles(t, tmpDir)
	require.Len(t, files, 3)

	// The newest lines survive, in order
	lines := payloads(t, tmpDir)
	require.NotEmpty(t, lines)
	assert.Equal(t, paddedPayload(total-1), lines[len(lines)-1])
	for i := 1; i < len(lines); i++ {
		assert.Less(t, lines[i-1], lines[i])
	}
}

// TestRestartDiscovery verifies files from an earlier run count against the cap
func TestRestartDiscovery(t *testing.T) {
	tmpDir := t.TempDir()

	var old []string
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("%s_20200101_000000_%03d.log", testName, i)
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))
		old = append(old, path)
	}
	// Files outside the rotation set are never touched
	unrelated := []string{"other_20200101_000000_000.log", testName + "_notes.log", testName + "_20200101_000000_000.txt"}
	for _, name := range unrelated {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("keep\n"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, testName+"_20200101_000000_999.log"), 0755))

	logger := NewLogger()
	cfg := DefaultConfig()
	cfg.Name = testName
	cfg.Directory = tmpDir
	cfg.EnableConsole = false
	cfg.MaxFileCount = 3
	require.NoError(t, logger.ApplyConfig(cfg))

	// The two oldest are gone before anything is written
	for _, path := range old[:2] {
		assert.NoFileExists(t, path)
	}
	for _, path := range old[2:] {
		assert.FileExists(t, path)
	}
	assert.Equal(t, old[2:], logger.writer.history.snapshot())

	require.NoError(t, logger.Start())
	logger.Info("new session")
	require.NoError(t, logger.Shutdown())

	files := logFiles(t, tmpDir)
	require.Len(t, files, 4)
	assert.Equal(t, old[2:], files[:3])
	assert.Equal(t, []string{"new session"}, payloads(t, tmpDir)[3:])

	for _, name := range unrelated {
		assert.FileExists(t, filepath.Join(tmpDir, name))
	}
	assert.DirExists(t, filepath.Join(tmpDir, testName+"_20200101_000000_999.log"))
}

// TestEmptyFileRemovedOnShutdown verifies a session that wrote nothing leaves no file behind
func TestEmptyFileRemovedOnShutdown(t *testing.T) {
	logger, tmpDir := createTestLogger(t)

	// Create the active file without content
	f, _, err := openAppend(osFS{}, logger.Stats().CurrentFile)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.Len(t, logFiles(t, tmpDir), 1)

	require.NoError(t, logger.Shutdown())
	assert.Empty(t, logFiles(t, tmpDir))
}

// TestDiscoverLogFiles verifies discovery order and filtering
func TestDiscoverLogFiles(t *testing.T) {
	tmpDir := t.TempDir()
	names := []string{
		testName + "_20240102_000000_000.log",
		testName + "_20231231_235959_999.log",
		testName + "_20240102_000000_001.log",
		testName + "x_20240102_000000_001.log",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), nil, 0644))
	}

	files, err := discoverLogFiles(osFS{}, newRotationNamer(tmpDir, testName))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, names[1]),
		filepath.Join(tmpDir, names[0]),
		filepath.Join(tmpDir, names[2]),
	}, files)

	missing, err := discoverLogFiles(osFS{}, newRotationNamer(filepath.Join(tmpDir, "absent"), testName))
	assert.NoError(t, err)
	assert.Empty(t, missing)
}

// TestEnsureDirectory verifies nested directories are created and made absolute
func TestEnsureDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dir, err := ensureDirectory(osFS{}, filepath.Join(tmpDir, "a", "b"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
	assert.DirExists(t, dir)

	blocker := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	_, err = ensureDirectory(osFS{}, filepath.Join(blocker, "sub"))
	assert.Error(t, err)
}
