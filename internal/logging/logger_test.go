package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, "warn")

	lg.Infof("hidden %d", 1)
	lg.Warnf("shown %d", 2)
	lg.Errorf("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "level=ERROR")
}

func TestLoggerWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, "debug").With("resource", "users")

	lg.Debugf("fetched %d", 10)

	line := buf.String()
	assert.Contains(t, line, "resource=users")
	assert.Contains(t, line, `msg="fetched 10"`)
}

func TestNewFileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	lg, err := NewFile(path, "info")
	require.NoError(t, err)

	lg.Infof("hello")
	require.NoError(t, lg.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "hello"))
}
