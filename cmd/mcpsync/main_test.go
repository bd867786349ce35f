package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/api"
	"github.com/brizzai/mcp-sync-console/internal/backendtest"
	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func newBackend(t *testing.T) (*backendtest.Backend, string) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	backend := backendtest.New()
	backend.SetTools(
		models.Tool{Name: "claude", Version: "1.2.0", ConfigPath: "/home/u/.claude.json", Settings: backendtest.Settings(`{"servers":[{"id":"github","enabled":true}]}`)},
		models.Tool{Name: "cursor", ConfigPath: "/home/u/.cursor/mcp.json", Settings: backendtest.Settings(`{"servers":[]}`)},
	)
	backend.SetMaster(backendtest.Settings(`{"servers":[{"id":"github","enabled":true}]}`))
	backend.SetRecommended(
		models.RecommendedServer{ID: "github", Name: "GitHub", Endpoint: "https://gh.example/sse", DefaultEnabled: true},
		models.RecommendedServer{ID: "slack", Name: "Slack", Endpoint: "https://slack.example/sse", APIKeyRequired: true},
	)
	return backend, backend.Start(t).URL
}

func execute(t *testing.T, baseURL, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--base-url", baseURL, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestToolsList(t *testing.T) {
	_, url := newBackend(t)

	out, err := execute(t, url, "", "tools", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "claude (1.2.0)")
	assert.Contains(t, out, "/home/u/.cursor/mcp.json")
	assert.Contains(t, out, "Identical")
	assert.Contains(t, out, "Differs from master")
}

func TestToolsListEmpty(t *testing.T) {
	backend, url := newBackend(t)
	backend.SetTools()

	out, err := execute(t, url, "", "tools", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tools detected")
}

func TestToolsRescanLocalized(t *testing.T) {
	backend, url := newBackend(t)

	out, err := execute(t, url, "", "tools", "rescan", "--locale", "ko")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.Calls(api.RouteRescanTools))
	assert.Contains(t, out, "2개의 도구 구성을 다시 불러왔습니다.")
	assert.Contains(t, out, "도구명")
}

func TestMasterShow(t *testing.T) {
	_, url := newBackend(t)

	out, err := execute(t, url, "", "master", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "{\n  \"servers\": [\n    {\n      \"id\": \"github\",")
	assert.Contains(t, out, "Last updated")

	out, err = execute(t, url, "", "master", "show", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "servers:")
	assert.Contains(t, out, "- id: github")
	assert.Contains(t, out, "enabled: true")
	assert.NotContains(t, out, "{")

	_, err = execute(t, url, "", "master", "show", "-o", "toml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestMasterSet(t *testing.T) {
	backend, url := newBackend(t)

	_, err := execute(t, url, `{"servers": [`, "master", "set", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The master configuration is not valid JSON.")
	assert.Equal(t, 0, backend.Calls(api.RouteSaveMasterConfig))

	_, err = execute(t, url, `[1, 2]`, "master", "set", "-")
	require.Error(t, err)
	assert.Equal(t, 0, backend.Calls(api.RouteSaveMasterConfig))

	path := filepath.Join(t.TempDir(), "master.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"servers":[{"id":"slack"}],"zeta":true}`), 0o600))
	out, err := execute(t, url, "", "master", "set", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved the master configuration.")
	assert.Equal(t, []string{"servers", "zeta"}, backend.Master().Settings.Keys())
	assert.Equal(t, []string{"slack"}, backend.Master().Settings.ServerIDs())
}

func TestMasterImport(t *testing.T) {
	backend, url := newBackend(t)

	_, err := execute(t, url, "", "master", "import", "slack")
	require.NoError(t, err)
	assert.JSONEq(t, `{"server_id":"slack"}`, string(backend.Bodies(api.RouteImportRecommended)[0]))

	_, err = execute(t, url, "", "master", "import", "slack", "--enabled")
	require.NoError(t, err)
	assert.JSONEq(t, `{"server_id":"slack","enabled":true}`, string(backend.Bodies(api.RouteImportRecommended)[1]))

	_, err = execute(t, url, "", "master", "import", "nope")
	assert.EqualError(t, err, "recommended server 'nope' not found")
}

func TestMasterToggle(t *testing.T) {
	backend, url := newBackend(t)

	_, err := execute(t, url, "", "master", "toggle", "github", "--on", "--off")
	require.Error(t, err)

	_, err = execute(t, url, "", "master", "toggle", "github")
	require.Error(t, err)

	_, err = execute(t, url, "", "master", "toggle", "slack", "--off")
	assert.ErrorContains(t, err, `server "slack" is not in the master configuration`)
	assert.Equal(t, 0, backend.Calls(api.RouteSaveMasterConfig))

	out, err := execute(t, url, "", "master", "toggle", "github", "--off", "--agent", "claude")
	require.NoError(t, err)
	assert.JSONEq(t, `{"servers":[{"id":"github","enabled":false}]}`, mustJSON(t, backend.Master().Settings))
	assert.JSONEq(t, `{"tool":"claude"}`, string(backend.Bodies(api.RouteSync)[0]))
	assert.Contains(t, out, "Updated")
}

func TestRecommendedList(t *testing.T) {
	backend, url := newBackend(t)

	out, err := execute(t, url, "", "recommended", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "GitHub")
	assert.Contains(t, out, "https://slack.example/sse")
	assert.Contains(t, out, "Required")
	assert.Contains(t, out, "Enabled by default")

	backend.SetRecommended()
	out, err = execute(t, url, "", "recommended", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No recommended servers available.")
}

func TestApply(t *testing.T) {
	backend, url := newBackend(t)

	_, err := execute(t, url, "", "apply", "--rule", "slack")
	require.Error(t, err, "--agent is required")

	out, err := execute(t, url, "", "apply", "--rule", "slack", "--agent", "cursor", "--enabled=false")
	require.NoError(t, err)
	assert.JSONEq(t, `{"server_id":"slack","enabled":false}`, string(backend.Bodies(api.RouteImportRecommended)[0]))
	assert.JSONEq(t, `{"tool":"cursor"}`, string(backend.Bodies(api.RouteSync)[0]))
	assert.Contains(t, out, "cursor")
}

func TestSync(t *testing.T) {
	backend, url := newBackend(t)

	out, err := execute(t, url, "", "sync")
	require.NoError(t, err)
	assert.JSONEq(t, `{"tool":null}`, string(backend.Bodies(api.RouteSync)[0]))
	assert.Contains(t, out, "Kept")
	assert.Contains(t, out, "Updated")

	backend.Fail(api.RouteSync, http.StatusInternalServerError, "disk full")
	_, err = execute(t, url, "", "sync", "claude")
	assert.EqualError(t, err, "disk full")
}

func TestHistory(t *testing.T) {
	backend, url := newBackend(t)

	out, err := execute(t, url, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sync history yet.")

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		backend.AddHistory(models.SyncSummary{
			Tool:     fmt.Sprintf("tool-%02d", i),
			Status:   models.SyncStatusUpdated,
			SyncedAt: start.Add(time.Duration(i) * time.Minute),
		})
	}

	out, err = execute(t, url, "", "history", "--limit", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "tool-11")
	assert.Contains(t, out, "tool-09")
	assert.NotContains(t, out, "tool-08")

	out, err = execute(t, url, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "tool-02")
	assert.NotContains(t, out, "tool-01")

	out, err = execute(t, url, "", "history", "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "tool-00")
}

func TestVersion(t *testing.T) {
	_, url := newBackend(t)

	out, err := execute(t, url, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mcpsync version dev")
}

func TestInvalidBaseURL(t *testing.T) {
	newBackend(t)

	_, err := execute(t, "ftp://example", "", "tools", "list")
	assert.ErrorContains(t, err, "endpoint.base_url")
}

func mustJSON(t *testing.T, s models.Settings) string {
	t.Helper()
	data, err := s.MarshalJSON()
	require.NoError(t, err)
	return string(data)
}
