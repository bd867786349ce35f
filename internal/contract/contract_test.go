package contract

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/brizzai/mcp-sync-console/internal/requester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	var ids []string
	for _, op := range c.Operations() {
		ids = append(ids, op.ID)
	}
	assert.ElementsMatch(t, []string{
		"list_tools",
		"rescan_tools",
		"get_master_config",
		"update_master_config",
		"list_recommended_servers",
		"import_recommended_server",
		"sync_tools",
		"sync_history",
	}, ids)

	op, ok := c.Operation("import_recommended_server")
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, op.Route.Method)
	assert.Equal(t, "/api/config/master/import", op.Route.Path)
	assert.True(t, c.HasRoute(requester.Route{Method: http.MethodGet, Path: "/api/sync/history"}))
	assert.False(t, c.HasRoute(requester.Route{Method: http.MethodDelete, Path: "/api/tools"}))
}

func TestOperationsOrdered(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	ops := c.Operations()
	for i := 1; i < len(ops); i++ {
		prev, cur := ops[i-1].Route, ops[i].Route
		assert.True(t, prev.Path < cur.Path || (prev.Path == cur.Path && prev.Method < cur.Method),
			"%s %s before %s %s", prev.Method, prev.Path, cur.Method, cur.Path)
	}
}

func TestGeneratedTools(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := []struct {
		id       string
		props    []string
		required []string
	}{
		{id: "list_tools"},
		{id: "update_master_config", props: []string{"settings"}, required: []string{"settings"}},
		{id: "import_recommended_server", props: []string{"enabled", "server_id"}, required: []string{"server_id"}},
		{id: "sync_tools", props: []string{"tool"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			op, ok := c.Operation(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.id, op.Tool.Name)
			assert.Contains(t, op.Tool.Description, op.Route.Path)

			var props []string
			for name := range op.Tool.InputSchema.Properties {
				props = append(props, name)
			}
			assert.ElementsMatch(t, tt.props, props)
			assert.ElementsMatch(t, tt.required, op.Tool.InputSchema.Required)
		})
	}

	op, _ := c.Operation("import_recommended_server")
	serverID, ok := op.Tool.InputSchema.Properties["server_id"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", serverID["type"])
	enabled, ok := op.Tool.InputSchema.Properties["enabled"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boolean", enabled["type"])
}

func TestLoadDataRejectsBadDocuments(t *testing.T) {
	_, err := LoadData([]byte(`{"swagger": "2.0"}`))
	assert.Error(t, err)

	_, err = LoadData([]byte(`
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /x:
    get:
      responses:
        "200": {description: ok}
`))
	assert.ErrorContains(t, err, "operationId")
}

func jsonResponse(status int, body string) *requester.Response {
	return &requester.Response{
		StatusCode: status,
		Body:       []byte(body),
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestValidator(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	v := NewValidator(c)

	tests := []struct {
		name    string
		route   requester.Route
		resp    *requester.Response
		wantErr bool
	}{
		{
			name:  "tools",
			route: requester.Route{Method: http.MethodGet, Path: "/api/tools"},
			resp:  jsonResponse(200, `[{"name":"claude","config_path":"/home/u/.claude.json","settings":{"servers":[{"id":"a"}]}}]`),
		},
		{
			name:  "master with extra settings keys",
			route: requester.Route{Method: http.MethodGet, Path: "/api/config/master"},
			resp:  jsonResponse(200, `{"settings":{"servers":[],"project_overrides":{}},"updated_at":"2024-05-01T10:00:00Z"}`),
		},
		{
			name:  "history with unknown status",
			route: requester.Route{Method: http.MethodGet, Path: "/api/sync/history"},
			resp:  jsonResponse(200, `[{"tool":"cursor","status":"weird","message":"","synced_at":"2024-05-01T10:00:00Z"}]`),
		},
		{
			name:    "master without settings",
			route:   requester.Route{Method: http.MethodGet, Path: "/api/config/master"},
			resp:    jsonResponse(200, `{"updated_at":"2024-05-01T10:00:00Z"}`),
			wantErr: true,
		},
		{
			name:    "tool list is an object",
			route:   requester.Route{Method: http.MethodGet, Path: "/api/tools"},
			resp:    jsonResponse(200, `{"tools":[]}`),
			wantErr: true,
		},
		{
			name:    "undocumented route",
			route:   requester.Route{Method: http.MethodGet, Path: "/api/unknown"},
			resp:    jsonResponse(200, `{}`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateResponse(context.Background(), tt.route, tt.resp)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.route, vErr.Route)
		})
	}
}

func TestNewResponseValidator(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Nil(t, NewResponseValidator(&config.EndpointConfig{}, c))
	assert.NotNil(t, NewResponseValidator(&config.EndpointConfig{StrictContract: true}, c))
}
