package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"cancerdetect/internal/config"
)

func TestLogger_WritesLevelFiles(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(&config.Config{LogDirectory: dir})
	require.NoError(t, err)
	defer l.Close()

	l.Info("loaded %d plugins", 3)
	l.Warning("Could not load cancer types.")
	l.Error("boom")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	require.Contains(t, string(info), "loaded 3 plugins")
	require.NotContains(t, string(info), "boom")

	warning, err := os.ReadFile(filepath.Join(dir, "warning.log"))
	require.NoError(t, err)
	require.Contains(t, string(warning), "Could not load cancer types.")

	errorLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	require.Contains(t, string(errorLog), "boom")
}

func TestLogger_CleanLogs(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(&config.Config{LogDirectory: dir})
	require.NoError(t, err)
	defer l.Close()

	l.Error("first failure")
	require.NoError(t, l.CleanLogs("error.log"))

	errorLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	require.Empty(t, errorLog)
}

func TestNewWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)

	l.Warning("plugin %q missing", "lung")
	require.Contains(t, buf.String(), `plugin \"lung\" missing`)
	require.Contains(t, buf.String(), `"level":"warn"`)
	require.NoError(t, l.CleanLogs("info.log"))
}
