package compat

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/lixenwraith/rotlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestCompatBuilder creates a standard setup for compatibility adapter tests
func createTestCompatBuilder(t *testing.T) (*Builder, *rotlog.Logger, string) {
	t.Helper()
	tmpDir := t.TempDir()
	appLogger, err := rotlog.NewBuilder().
		Name("compat").
		Directory(tmpDir).
		EnableConsole(false).
		LevelString("debug").
		FlushIntervalMs(10).
		Build()
	require.NoError(t, err)

	builder := NewBuilder().WithLogger(appLogger)
	return builder, appLogger, tmpDir
}

// readLogLines returns all lines of the .log files in dir, oldest file first
func readLogLines(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "compat_*.log"))
	require.NoError(t, err)
	sort.Strings(matches)

	var lines []string
	for _, path := range matches {
		f, err := os.Open(path)
		require.NoError(t, err)
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		f.Close()
		require.NoError(t, scanner.Err())
	}
	return lines
}

// body strips the timestamp from a rendered line
func body(line string) string {
	if i := strings.Index(line, " ["); i >= 0 {
		return line[i+1:]
	}
	return line
}

// TestCompatBuilder verifies the compatibility builder can be initialized correctly
func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		builder, logger, _ := createTestCompatBuilder(t)
		defer logger.Shutdown()

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.NotNil(t, gnetAdapter)
		assert.Equal(t, logger, gnetAdapter.logger)
	})

	t.Run("with config", func(t *testing.T) {
		logCfg := rotlog.DefaultConfig()
		logCfg.Directory = t.TempDir()
		logCfg.EnableConsole = false

		builder := NewBuilder().WithConfig(logCfg)
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, fasthttpAdapter)

		logger1, err := builder.GetLogger()
		require.NoError(t, err)
		defer logger1.Shutdown()
		assert.Same(t, fasthttpAdapter.logger, logger1)
		assert.True(t, logger1.Stats().WorkerAlive)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewBuilder().WithLogger(nil).BuildGnet()
		assert.Error(t, err)
	})
}

// TestGnetAdapter tests the gnet adapter's logging output and format
func TestGnetAdapter(t *testing.T) {
	builder, logger, tmpDir := createTestCompatBuilder(t)

	var fatalMsg string
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	require.NoError(t, logger.Shutdown())
	lines := readLogLines(t, tmpDir)
	require.Len(t, lines, 5)

	assert.Equal(t, "[Debug] trace=gnet | gnet debug id=1", body(lines[0]))
	assert.Equal(t, "[Info] trace=gnet | gnet info id=2", body(lines[1]))
	assert.True(t, strings.HasPrefix(body(lines[2]), "[Warn] trace=gnet | gnet warn id=3\t["))
	assert.True(t, strings.HasPrefix(body(lines[3]), "[Error] trace=gnet | gnet error id=4\t["))
	assert.True(t, strings.HasPrefix(body(lines[4]), "[Error] trace=gnet | fatal: gnet fatal id=5\t["))

	// Positions point at the adapter's caller
	for _, line := range lines[2:] {
		assert.Contains(t, line, "compat_test.go, ")
		assert.Contains(t, line, "TestGnetAdapter]")
	}
	assert.Equal(t, "gnet fatal id=5", fatalMsg)
}

// TestFastHTTPAdapter tests the fasthttp adapter's logging output and level detection
func TestFastHTTPAdapter(t *testing.T) {
	builder, logger, tmpDir := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	require.NoError(t, logger.Shutdown())
	lines := readLogLines(t, tmpDir)
	require.Len(t, lines, 4)

	expectedTags := []string{"[Info]", "[Debug]", "[Warn]", "[Error]"}
	for i, line := range lines {
		assert.True(t, strings.HasPrefix(body(line), expectedTags[i]+" trace=fasthttp | "+testMessages[i]), line)
	}
}

// TestFastHTTPAdapterOptions verifies the default level and a custom detector
func TestFastHTTPAdapterOptions(t *testing.T) {
	builder, logger, tmpDir := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP(
		WithDefaultLevel(rotlog.LevelWarn),
		WithLevelDetector(func(string) int64 { return rotlog.LevelInfo }),
	)
	require.NoError(t, err)

	adapter.Printf("served %d requests", 3)

	require.NoError(t, logger.Shutdown())
	lines := readLogLines(t, tmpDir)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(body(lines[0]), "[Warn] trace=fasthttp | served 3 requests\t["))
}

// TestDetectLogLevel covers the keyword heuristics
func TestDetectLogLevel(t *testing.T) {
	assert.Equal(t, rotlog.LevelError, DetectLogLevel("Connection FAILED"))
	assert.Equal(t, rotlog.LevelError, DetectLogLevel("panic recovered"))
	assert.Equal(t, rotlog.LevelWarn, DetectLogLevel("deprecated header"))
	assert.Equal(t, rotlog.LevelDebug, DetectLogLevel("trace id 5"))
	assert.Equal(t, rotlog.LevelError, DetectLogLevel("dial tcp: connection refused"))
	assert.Equal(t, rotlog.LevelWarn, DetectLogLevel("read timeout on keep-alive connection"))
	assert.Equal(t, rotlog.LevelWarn, DetectLogLevel("too many open connections"))
	assert.Equal(t, rotlog.LevelInfo, DetectLogLevel("listening on :8080"))
}
