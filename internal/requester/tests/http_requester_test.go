package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/brizzai/mcp-sync-console/internal/requester"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockAuthManager implements the AuthManager interface for testing
type MockAuthManager struct{}

func (m *MockAuthManager) ApplyAuth(req *http.Request) error {
	return nil
}

type rejectingValidator struct {
	calls int
}

func (v *rejectingValidator) ValidateResponse(ctx context.Context, route requester.Route, resp *requester.Response) error {
	v.calls++
	return errors.New("contract mismatch")
}

func TestHTTPRequester(t *testing.T) {
	tests := []struct {
		name           string
		route          requester.Route
		in             any
		timeout        time.Duration
		serverResponse func(w http.ResponseWriter, r *http.Request)
		checkResponse  func(t *testing.T, out map[string]string, err error)
	}{
		{
			name:  "Simple GET Request",
			route: requester.Route{Method: http.MethodGet, Path: "/test"},
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/test", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				if err := json.NewEncoder(w).Encode(map[string]string{"status": "success"}); err != nil {
					t.Errorf("Failed to encode response: %v", err)
				}
			},
			checkResponse: func(t *testing.T, out map[string]string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "success", out["status"])
			},
		},
		{
			name:  "POST Request with Body",
			route: requester.Route{Method: http.MethodPost, Path: "/test"},
			in:    map[string]string{"key1": "value1"},
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body map[string]interface{}
				err := json.NewDecoder(r.Body).Decode(&body)
				require.NoError(t, err)
				assert.Equal(t, "value1", body["key1"])

				w.WriteHeader(http.StatusCreated)
				if err := json.NewEncoder(w).Encode(map[string]string{"status": "created"}); err != nil {
					t.Errorf("Failed to encode response: %v", err)
				}
			},
			checkResponse: func(t *testing.T, out map[string]string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "created", out["status"])
			},
		},
		{
			name:  "Error Body Message",
			route: requester.Route{Method: http.MethodPost, Path: "/api/sync"},
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error": "tool not found"}`))
			},
			checkResponse: func(t *testing.T, out map[string]string, err error) {
				var apiErr *requester.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
				assert.Equal(t, "tool not found", apiErr.Message)
				assert.Equal(t, "tool not found", err.Error())
			},
		},
		{
			name:  "Malformed Error Body Falls Back To Status Text",
			route: requester.Route{Method: http.MethodGet, Path: "/api/tools"},
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`<html>oops</html>`))
			},
			checkResponse: func(t *testing.T, out map[string]string, err error) {
				var apiErr *requester.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "Internal Server Error", apiErr.Message)
			},
		},
		{
			name:  "Empty Error Field Falls Back To Status Text",
			route: requester.Route{Method: http.MethodGet, Path: "/api/tools"},
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(`{"error": ""}`))
			},
			checkResponse: func(t *testing.T, out map[string]string, err error) {
				var apiErr *requester.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "Bad Gateway", apiErr.Message)
			},
		},
		{
			name:  "Non String Error Field Falls Back To Status Text",
			route: requester.Route{Method: http.MethodGet, Path: "/api/tools"},
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error": {"code": 4}}`))
			},
			checkResponse: func(t *testing.T, out map[string]string, err error) {
				var apiErr *requester.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "Not Found", apiErr.Message)
			},
		},
		{
			name:    "Request Timeout",
			route:   requester.Route{Method: http.MethodGet, Path: "/timeout"},
			timeout: 100 * time.Millisecond,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
				w.WriteHeader(http.StatusOK)
			},
			checkResponse: func(t *testing.T, out map[string]string, err error) {
				assert.Error(t, err)
				var apiErr *requester.APIError
				assert.False(t, errors.As(err, &apiErr))
			},
		},
		{
			name:  "Undecodable Success Body",
			route: requester.Route{Method: http.MethodGet, Path: "/api/tools"},
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			checkResponse: func(t *testing.T, out map[string]string, err error) {
				assert.ErrorContains(t, err, "failed to decode")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			r := requester.NewHTTPRequester(requester.HTTPRequesterParams{
				ServiceConfig: &config.EndpointConfig{
					BaseURL:  server.URL,
					AuthType: config.AuthTypeNone,
				},
				AuthManager: &MockAuthManager{},
			})
			if tt.timeout > 0 {
				r.SetTimeout(tt.timeout)
			}

			out := map[string]string{}
			err := r.Do(context.Background(), tt.route, tt.in, &out)
			tt.checkResponse(t, out, err)
		})
	}
}

func TestHTTPRequesterValidator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusConflict)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	validator := &rejectingValidator{}
	r := requester.NewHTTPRequester(requester.HTTPRequesterParams{
		ServiceConfig: &config.EndpointConfig{BaseURL: server.URL},
		AuthManager:   &MockAuthManager{},
		Validator:     validator,
	})

	err := r.Do(context.Background(), requester.Route{Method: http.MethodGet, Path: "/ok"}, nil, nil)
	assert.EqualError(t, err, "contract mismatch")
	assert.Equal(t, 1, validator.calls)

	// error responses are reported as APIError without validation
	err = r.Do(context.Background(), requester.Route{Method: http.MethodGet, Path: "/fail"}, nil, nil)
	var apiErr *requester.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Conflict", apiErr.Message)
	assert.Equal(t, 1, validator.calls)
}

func TestHTTPRequesterContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	r := requester.NewHTTPRequester(requester.HTTPRequesterParams{
		ServiceConfig: &config.EndpointConfig{BaseURL: server.URL},
		AuthManager:   &MockAuthManager{},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := r.Do(ctx, requester.Route{Method: http.MethodGet, Path: "/slow"}, nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
