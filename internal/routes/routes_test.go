package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cancerdetect/internal/config"
	"cancerdetect/internal/detection"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/middleware"
	"cancerdetect/internal/plugin"
	"cancerdetect/internal/plugin/drivers"
	"cancerdetect/internal/services/websocket"
	"cancerdetect/internal/session"
)

func setupServer(t *testing.T, password string) *httptest.Server {
	t.Helper()

	pluginDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(pluginDir, "lung.toml"), []byte("driver = \"static\"\n[options]\nlabel = \"Benign\"\n"), 0o644))

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>dashboard</h1>"), 0o644))

	cfg := &config.Config{
		Password:        password,
		PluginDirectory: pluginDir,
		PluginSuffix:    ".toml",
		MaxUploadSize:   1,
		StaticDirectory: staticDir,
		LogDirectory:    t.TempDir(),
	}
	log := logger.NewWriterLogger(io.Discard)

	svc := &Services{
		Registry: plugin.NewRegistry(pluginDir, ".toml", plugin.PolicyWarnAndContinue, log),
		Detector: detection.NewDispatcher(plugin.NewLoader(pluginDir, ".toml", drivers.Builtin()), log),
		Sessions: session.NewStore(session.ImageFirst, time.Minute, log),
		Hub:      websocket.NewHubService(log),
	}

	srv := httptest.NewServer(SetupRoutes(svc, cfg, log))
	t.Cleanup(srv.Close)
	return srv
}

func TestRoutes_DashboardAndPlugins(t *testing.T) {
	srv := setupServer(t, "")

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "dashboard")

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)

	resp, err = http.Get(srv.URL + "/api/plugins")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.JSONEq(t, `{"plugins":["lung"]}`, string(body))

	resp, err = http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/history")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoutes_SelectWithoutUploadThenDetect(t *testing.T) {
	srv := setupServer(t, "")
	id := "6f1c1f4e-2f4b-4b8e-9a55-3d7f2f0e8d11"

	do := func(method, path, body string) *http.Response {
		req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: id})
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := do(http.MethodPost, "/api/select", "plugin=lung")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(http.MethodPost, "/api/detect", "")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), detection.MsgUploadImage)
}

func TestRoutes_AuthRequired(t *testing.T) {
	srv := setupServer(t, "secret")

	resp, err := http.Get(srv.URL + "/api/plugins")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
