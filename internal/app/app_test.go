package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cancerdetect/internal/config"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/plugin"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skin.toml"), []byte("driver = \"static\"\n[options]\nlabel = \"Malignant\"\n"), 0o644))
	return &config.Config{
		PluginDirectory: dir,
		PluginSuffix:    ".toml",
		MaxUploadSize:   1,
		SessionTTL:      time.Minute,
		StaticDirectory: t.TempDir(),
		LogDirectory:    t.TempDir(),
	}
}

func TestNewCore_PolicyDefaultAndOverride(t *testing.T) {
	log := logger.NewWriterLogger(io.Discard)
	cfg := testConfig(t)

	core, err := NewCore(cfg, log, plugin.PolicyWarnAndContinue)
	require.NoError(t, err)
	require.Equal(t, plugin.PolicyWarnAndContinue, core.Registry.Policy())
	require.Nil(t, core.History)

	cfg.PluginPolicy = "fail-fast"
	core, err = NewCore(cfg, log, plugin.PolicyWarnAndContinue)
	require.NoError(t, err)
	require.Equal(t, plugin.PolicyFailFast, core.Registry.Policy())

	cfg.PluginPolicy = "ignore"
	_, err = NewCore(cfg, log, plugin.PolicyWarnAndContinue)
	require.Error(t, err)
}

func TestNewCore_History(t *testing.T) {
	cfg := testConfig(t)
	cfg.HistoryDatabase = filepath.Join(t.TempDir(), "data", "history.db")

	core, err := NewCore(cfg, logger.NewWriterLogger(io.Discard), plugin.PolicyFailFast)
	require.NoError(t, err)
	defer core.Close()
	require.NotNil(t, core.History)
}

func TestApp_Handler(t *testing.T) {
	core, err := NewCore(testConfig(t), logger.NewWriterLogger(io.Discard), plugin.PolicyWarnAndContinue)
	require.NoError(t, err)

	srv := httptest.NewServer(NewApp(core).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/plugins")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"plugins":["skin"]}`, string(body))
}
