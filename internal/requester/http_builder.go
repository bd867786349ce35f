package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

// RequestIDHeader carries a per-request id the backend can log.
const RequestIDHeader = "X-Request-ID"

// HTTPRequestBuilderParams holds the parameters for creating an HTTPRequestBuilder
type HTTPRequestBuilderParams struct {
	fx.In
	EndpointConfig *config.EndpointConfig
	AuthManager    AuthManager
}

// HTTPRequestBuilder turns a route and a body into an authenticated request
type HTTPRequestBuilder struct {
	endpointCfg *config.EndpointConfig
	authMgr     AuthManager
}

// NewHTTPRequestBuilder creates a new HTTPRequestBuilder
func NewHTTPRequestBuilder(params HTTPRequestBuilderParams) *HTTPRequestBuilder {
	return &HTTPRequestBuilder{
		endpointCfg: params.EndpointConfig,
		authMgr:     params.AuthManager,
	}
}

// BuildRequest builds a request for route. in, when not nil, is sent as the
// JSON body.
func (b *HTTPRequestBuilder) BuildRequest(ctx context.Context, route Route, in any) (*Request, error) {
	if route.Method == "" || !strings.HasPrefix(route.Path, "/") {
		return nil, fmt.Errorf("invalid route %q %q", route.Method, route.Path)
	}

	url := strings.TrimRight(b.endpointCfg.BaseURL, "/") + route.Path

	var body io.Reader
	contentType := ""
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	headers := make(map[string]string, len(b.endpointCfg.Headers))
	for k, v := range b.endpointCfg.Headers {
		headers[k] = v
	}

	httpReq, err := http.NewRequestWithContext(ctx, route.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)

	if err := b.authMgr.ApplyAuth(httpReq); err != nil {
		return nil, fmt.Errorf("failed to apply authentication: %w", err)
	}

	return &Request{
		URL:         url,
		Method:      route.Method,
		Path:        route.Path,
		Body:        body,
		Headers:     headers,
		ContentType: contentType,
		RequestID:   requestID,
		HttpRequest: httpReq,
	}, nil
}
