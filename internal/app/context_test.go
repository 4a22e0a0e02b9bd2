package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"execdash/internal/config"
	"execdash/internal/dashboard"
)

func TestResolveConfigSeedsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := ResolveConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultUpstream, cfg.Upstream.BaseURL)

	cfg, err = ResolveConfig("", "http://jira-proxy:8000")
	require.NoError(t, err)
	assert.Equal(t, "http://jira-proxy:8000", cfg.Upstream.BaseURL)
}

func TestResolveConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	body := "upstream:\n  base_url: http://from-file:1\n  path: /data\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := ResolveConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, "http://from-file:1", cfg.Upstream.BaseURL)
	assert.Equal(t, "/data", cfg.Upstream.Path)

	cfg, err = ResolveConfig(path, "http://override:2")
	require.NoError(t, err)
	assert.Equal(t, "http://override:2", cfg.Upstream.BaseURL)
	assert.Equal(t, "/data", cfg.Upstream.Path)

	_, err = ResolveConfig(path, "not a url")
	require.Error(t, err)

	_, err = ResolveConfig(filepath.Join(dir, "missing.yml"), "")
	require.Error(t, err)
}

func TestResolveConfigPicksUpWorkingDirFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(config.GenerateDefault("http://cwd:9")), 0o644))

	cfg, err := ResolveConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, "http://cwd:9", cfg.Upstream.BaseURL)
}

func TestNewDashboardUsesConfiguredPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"initiative":{"key":"MIG-1"},"phases":[{"summary":"Phase 1 - Wrap up","taskCount":1,"percentDone":100}]}`))
	}))
	defer srv.Close()

	cfg := config.Default(srv.URL)
	cfg.Upstream.Path = "/custom/dashboard"
	cfg.Milestones = []config.Milestone{{Label: "Wrapped", Keywords: []string{"wrap"}}}

	d := NewDashboard(cfg, zaptest.NewLogger(t))
	require.NoError(t, d.Load(context.Background(), false))
	assert.Equal(t, "/custom/dashboard", gotPath)
	assert.Equal(t, dashboard.StateReady, d.View().State)
	assert.Equal(t, "Wrapped", d.Milestones.Label("Phase 1 - Wrap up"))
}
