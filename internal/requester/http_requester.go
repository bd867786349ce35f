package requester

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/brizzai/mcp-sync-console/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// HTTPRequester builds and executes backend calls. Each call is a single
// attempt; there are no retries.
type HTTPRequester struct {
	client    *http.Client
	builder   *HTTPRequestBuilder
	validator ResponseValidator
}

type HTTPRequesterParams struct {
	fx.In

	ServiceConfig *config.EndpointConfig
	AuthManager   AuthManager
	Validator     ResponseValidator `optional:"true"`
}

// NewHTTPRequester creates a new HTTPRequester. A zero endpoint timeout means
// requests wait indefinitely.
func NewHTTPRequester(params HTTPRequesterParams) *HTTPRequester {
	return &HTTPRequester{
		client: &http.Client{
			Timeout: params.ServiceConfig.Timeout,
		},
		builder: &HTTPRequestBuilder{
			endpointCfg: params.ServiceConfig,
			authMgr:     params.AuthManager,
		},
		validator: params.Validator,
	}
}

// SetTimeout sets the timeout for the HTTP client
func (r *HTTPRequester) SetTimeout(timeout time.Duration) {
	r.client.Timeout = timeout
}

// Do implements Requester.
func (r *HTTPRequester) Do(ctx context.Context, route Route, in, out any) error {
	req, err := r.builder.BuildRequest(ctx, route, in)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := r.execute(req)
	fields := []zap.Field{
		zap.String("method", route.Method),
		zap.String("path", route.Path),
		zap.String("request_id", req.RequestID),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		logger.Debug("backend request failed", append(fields, zap.Error(err))...)
		return fmt.Errorf("%s %s: %w", route.Method, route.Path, err)
	}
	logger.Debug("backend request", append(fields, zap.Int("status", resp.StatusCode))...)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if r.validator != nil {
		if err := r.validator.ValidateResponse(ctx, route, resp); err != nil {
			return err
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", route.Method, route.Path, err)
	}
	return nil
}

// execute performs the actual HTTP request execution
func (r *HTTPRequester) execute(req *Request) (resp *Response, err error) {
	httpResp, err := r.client.Do(req.HttpRequest)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := httpResp.Body.Close(); closeErr != nil && err == nil {
			resp, err = nil, fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Body:       bodyBytes,
		Headers:    httpResp.Header,
	}, nil
}
