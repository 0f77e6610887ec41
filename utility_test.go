package rotlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLevel tests the level name parser
func TestLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{" Info ", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"fatal", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := Level(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

// TestLevelName verifies tags for exact and in-between levels
func TestLevelName(t *testing.T) {
	assert.Equal(t, "Debug", levelName(LevelDebug))
	assert.Equal(t, "Debug", levelName(-1))
	assert.Equal(t, "Info", levelName(LevelInfo))
	assert.Equal(t, "Warn", levelName(LevelWarn))
	assert.Equal(t, "Error", levelName(LevelError))
	assert.Equal(t, "Error", levelName(100))
}

// TestParseKeyValue tests splitting override strings
func TestParseKeyValue(t *testing.T) {
	key, value, err := parseKeyValue(" name = svc ")
	require.NoError(t, err)
	assert.Equal(t, "name", key)
	assert.Equal(t, "svc", value)

	key, value, err = parseKeyValue("directory=/a=b")
	require.NoError(t, err)
	assert.Equal(t, "directory", key)
	assert.Equal(t, "/a=b", value)

	_, _, err = parseKeyValue("novalue")
	assert.Error(t, err)
	_, _, err = parseKeyValue("=value")
	assert.Error(t, err)
}

// TestFmtErrorf verifies the package prefix and wrapping
func TestFmtErrorf(t *testing.T) {
	err := fmtErrorf("file output %w", ErrAlreadyConfigured)
	assert.Equal(t, "log: file output already configured", err.Error())
	assert.True(t, errors.Is(err, ErrAlreadyConfigured))

	err = fmtErrorf("log: already prefixed")
	assert.Equal(t, "log: already prefixed", err.Error())
}

// TestCombineErrors verifies nil handling and wrapping of the last error
func TestCombineErrors(t *testing.T) {
	e1 := errors.New("first")
	assert.Nil(t, combineErrors(nil, nil))
	assert.Equal(t, e1, combineErrors(e1, nil))
	assert.Equal(t, e1, combineErrors(nil, e1))

	combined := combineErrors(e1, ErrNotConfigured)
	assert.Equal(t, "first; not configured", combined.Error())
	assert.ErrorIs(t, combined, ErrNotConfigured)
}

// TestFormatByteSize verifies human readable sizes
func TestFormatByteSize(t *testing.T) {
	assert.Equal(t, "512B", formatByteSize(512))
	assert.Equal(t, "1.0KB", formatByteSize(1024))
	assert.Equal(t, "5.0MB", formatByteSize(5*1024*1024))
	assert.Equal(t, "1.5GB", formatByteSize(1536*1024*1024))
}

// TestExecutableBaseName verifies a usable default base name
func TestExecutableBaseName(t *testing.T) {
	name := executableBaseName()
	assert.NotEmpty(t, name)
	assert.NotContains(t, name, "/")
}
