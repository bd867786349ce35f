package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/backendtest"
	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/brizzai/mcp-sync-console/internal/contract"
	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/brizzai/mcp-sync-console/internal/requester"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, backend *backendtest.Backend, strict bool) *Client {
	t.Helper()
	srv := backend.Start(t)
	cfg := &config.EndpointConfig{BaseURL: srv.URL, AuthType: config.AuthTypeNone, StrictContract: strict}

	params := requester.HTTPRequesterParams{
		ServiceConfig: cfg,
		AuthManager:   requester.NewHTTPAuthManager(cfg),
	}
	if strict {
		c, err := contract.Load()
		require.NoError(t, err)
		params.Validator = contract.NewResponseValidator(cfg, c)
	}
	return NewClient(requester.NewHTTPRequester(params))
}

func seededBackend() *backendtest.Backend {
	b := backendtest.New()
	b.SetTools(
		models.Tool{Name: "claude", ConfigPath: "/home/u/.claude.json", Settings: backendtest.Settings(`{"servers":[{"id":"github"}]}`)},
		models.Tool{Name: "cursor", Version: "0.42", ConfigPath: "/home/u/.cursor/mcp.json", Settings: backendtest.Settings(`{"servers":[]}`)},
	)
	b.SetMaster(backendtest.Settings(`{"servers":[{"id":"github","enabled":true}],"project_overrides":{}}`))
	b.SetRecommended(models.RecommendedServer{
		ID:             "slack",
		Name:           "Slack",
		Endpoint:       "https://mcp.slack.example/sse",
		APIKeyRequired: true,
		DefaultEnabled: false,
	})
	return b
}

func TestRoutesMatchContract(t *testing.T) {
	c, err := contract.Load()
	require.NoError(t, err)
	for _, route := range Routes() {
		assert.True(t, c.HasRoute(route), "%s %s is not documented", route.Method, route.Path)
	}
	assert.Len(t, c.Operations(), len(Routes()))
}

func TestClientOperations(t *testing.T) {
	for _, strict := range []bool{false, true} {
		t.Run(map[bool]string{false: "lenient", true: "strict"}[strict], func(t *testing.T) {
			backend := seededBackend()
			client := newTestClient(t, backend, strict)
			ctx := context.Background()

			tools, err := client.FetchTools(ctx)
			require.NoError(t, err)
			require.Len(t, tools, 2)
			assert.Equal(t, "claude", tools[0].Name)
			assert.Equal(t, "0.42", tools[1].Version)
			assert.Equal(t, `[{"id":"github"}]`, tools[0].Settings.ServersJSON())

			master, err := client.FetchMasterConfig(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"github"}, master.Settings.ServerIDs())
			assert.NotNil(t, master.UpdatedAt)

			recommended, err := client.FetchRecommendedServers(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff([]models.RecommendedServer{{
				ID:             "slack",
				Name:           "Slack",
				Endpoint:       "https://mcp.slack.example/sse",
				APIKeyRequired: true,
			}}, recommended); diff != "" {
				t.Errorf("recommended mismatch (-want +got):\n%s", diff)
			}

			enabled := true
			imported, err := client.ImportRecommendedServer(ctx, "slack", &enabled)
			require.NoError(t, err)
			assert.Equal(t, []string{"github", "slack"}, imported.Settings.ServerIDs())
			assert.JSONEq(t, `{"server_id":"slack","enabled":true}`, string(backend.Bodies(RouteImportRecommended)[0]))

			summaries, err := client.SyncTools(ctx, "cursor")
			require.NoError(t, err)
			require.Len(t, summaries, 1)
			assert.Equal(t, models.SyncStatusUpdated, summaries[0].Status)
			assert.JSONEq(t, `{"tool":"cursor"}`, string(backend.Bodies(RouteSync)[0]))

			summaries, err = client.SyncTools(ctx, "")
			require.NoError(t, err)
			assert.Len(t, summaries, 2)
			assert.JSONEq(t, `{"tool":null}`, string(backend.Bodies(RouteSync)[1]))

			history, err := client.FetchSyncHistory(ctx)
			require.NoError(t, err)
			assert.Len(t, history, 3)

			saved, err := client.UpdateMasterConfig(ctx, backendtest.Settings(`{"servers":[]}`))
			require.NoError(t, err)
			assert.Equal(t, "[]", saved.Settings.ServersJSON())
			assert.JSONEq(t, `{"settings":{"servers":[]}}`, string(backend.Bodies(RouteSaveMasterConfig)[0]))

			backend.SetScanResult(models.Tool{Name: "gemini", ConfigPath: "/home/u/.gemini/settings.json", Settings: backendtest.Settings(`{}`)})
			rescanned, err := client.RescanTools(ctx)
			require.NoError(t, err)
			require.Len(t, rescanned, 1)
			assert.Equal(t, "gemini", rescanned[0].Name)

			for _, route := range Routes() {
				assert.GreaterOrEqual(t, backend.Calls(route), 1, "%s %s was never called", route.Method, route.Path)
			}
		})
	}
}

func TestImportWithoutEnabledOmitsField(t *testing.T) {
	backend := seededBackend()
	client := newTestClient(t, backend, false)

	master, err := client.ImportRecommendedServer(context.Background(), "slack", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"server_id":"slack"}`, string(backend.Bodies(RouteImportRecommended)[0]))

	servers, err := master.Settings.Servers()
	require.NoError(t, err)
	raw, _ := servers[1].Get("enabled")
	assert.Equal(t, "false", string(raw))
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(b *backendtest.Backend)
		call    func(c *Client) error
		status  int
		message string
	}{
		{
			name: "backend message",
			call: func(c *Client) error {
				_, err := c.ImportRecommendedServer(context.Background(), "missing", nil)
				return err
			},
			status:  http.StatusNotFound,
			message: "recommended server 'missing' not found",
		},
		{
			name: "injected failure",
			setup: func(b *backendtest.Backend) {
				b.Fail(RouteSync, http.StatusInternalServerError, "io error: permission denied")
			},
			call: func(c *Client) error {
				_, err := c.SyncTools(context.Background(), "")
				return err
			},
			status:  http.StatusInternalServerError,
			message: "io error: permission denied",
		},
		{
			name: "no error body",
			setup: func(b *backendtest.Backend) {
				b.FailRaw(RouteListTools, http.StatusServiceUnavailable, "")
			},
			call: func(c *Client) error {
				_, err := c.FetchTools(context.Background())
				return err
			},
			status:  http.StatusServiceUnavailable,
			message: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := seededBackend()
			if tt.setup != nil {
				tt.setup(backend)
			}
			client := newTestClient(t, backend, false)

			err := tt.call(client)
			var apiErr *requester.APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Error())
		})
	}
}

func TestClientSingleAttempt(t *testing.T) {
	backend := seededBackend()
	backend.Fail(RouteGetMasterConfig, http.StatusBadGateway, "upstream down")
	client := newTestClient(t, backend, false)

	_, err := client.FetchMasterConfig(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, backend.Calls(RouteGetMasterConfig))
}

func TestClientHonoursContext(t *testing.T) {
	backend := seededBackend()
	release := backend.Hold(RouteListTools)
	defer release()
	client := newTestClient(t, backend, false)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.FetchTools(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
