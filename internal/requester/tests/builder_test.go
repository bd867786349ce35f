package tests

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/brizzai/mcp-sync-console/internal/requester"
	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuthManager struct {
	applyAuthFunc func(*http.Request) error
}

func (m *mockAuthManager) ApplyAuth(req *http.Request) error {
	return m.applyAuthFunc(req)
}

func TestHTTPRequestBuilder_BuildRequest(t *testing.T) {
	tests := []struct {
		name         string
		route        requester.Route
		body         any
		config       *config.EndpointConfig
		authManager  requester.AuthManager
		wantErr      bool
		checkRequest func(t *testing.T, req *requester.Request)
	}{
		{
			name:  "Simple GET Request",
			route: requester.Route{Method: http.MethodGet, Path: "/api/tools"},
			config: &config.EndpointConfig{
				BaseURL: "http://api.example.com/",
				Headers: map[string]string{
					"X-Tenant": "ops",
				},
			},
			authManager: &mockAuthManager{
				applyAuthFunc: func(req *http.Request) error {
					req.Header.Set("Authorization", "Bearer test-token")
					return nil
				},
			},
			checkRequest: func(t *testing.T, req *requester.Request) {
				assert.Equal(t, "http://api.example.com/api/tools", req.HttpRequest.URL.String())
				assert.Equal(t, http.MethodGet, req.HttpRequest.Method)
				assert.Nil(t, req.HttpRequest.Body)
				assert.Empty(t, req.HttpRequest.Header.Get("Content-Type"))
				assert.Equal(t, "ops", req.HttpRequest.Header.Get("X-Tenant"))
				assert.Equal(t, "application/json", req.HttpRequest.Header.Get("Accept"))
				assert.Equal(t, "Bearer test-token", req.HttpRequest.Header.Get("Authorization"))

				_, err := uuid.Parse(req.HttpRequest.Header.Get(requester.RequestIDHeader))
				assert.NoError(t, err)
				assert.Equal(t, req.RequestID, req.HttpRequest.Header.Get(requester.RequestIDHeader))
			},
		},
		{
			name:  "POST Request with Body",
			route: requester.Route{Method: http.MethodPost, Path: "/api/sync"},
			body:  map[string]any{"tool": nil},
			config: &config.EndpointConfig{
				BaseURL: "http://api.example.com",
			},
			authManager: &mockAuthManager{
				applyAuthFunc: func(req *http.Request) error {
					return nil
				},
			},
			checkRequest: func(t *testing.T, req *requester.Request) {
				assert.Equal(t, "http://api.example.com/api/sync", req.HttpRequest.URL.String())
				assert.Equal(t, http.MethodPost, req.HttpRequest.Method)
				assert.Equal(t, "application/json", req.HttpRequest.Header.Get("Content-Type"))

				body, err := io.ReadAll(req.HttpRequest.Body)
				require.NoError(t, err)
				assert.JSONEq(t, `{"tool": null}`, string(body))
			},
		},
		{
			name:  "Relative Path Rejected",
			route: requester.Route{Method: http.MethodGet, Path: "api/tools"},
			config: &config.EndpointConfig{
				BaseURL: "http://api.example.com",
			},
			authManager: &mockAuthManager{
				applyAuthFunc: func(req *http.Request) error {
					return nil
				},
			},
			wantErr:      true,
			checkRequest: func(t *testing.T, req *requester.Request) {},
		},
		{
			name:  "Auth Failure",
			route: requester.Route{Method: http.MethodGet, Path: "/api/tools"},
			config: &config.EndpointConfig{
				BaseURL: "http://api.example.com",
			},
			authManager: &mockAuthManager{
				applyAuthFunc: func(req *http.Request) error {
					return errors.New("no credentials")
				},
			},
			wantErr:      true,
			checkRequest: func(t *testing.T, req *requester.Request) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := requester.NewHTTPRequestBuilder(requester.HTTPRequestBuilderParams{
				EndpointConfig: tt.config,
				AuthManager:    tt.authManager,
			})

			req, err := builder.BuildRequest(context.Background(), tt.route, tt.body)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.checkRequest(t, req)
		})
	}
}
