package contract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/brizzai/mcp-sync-console/internal/requester"
	"github.com/getkin/kin-openapi/openapi3filter"
)

// ValidationError reports a backend response that does not match the
// contract.
type ValidationError struct {
	Route requester.Route
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("response of %s %s violates the API contract: %v", e.Route.Method, e.Route.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validator checks responses against a Contract.
type Validator struct {
	contract *Contract
}

func NewValidator(c *Contract) *Validator {
	return &Validator{contract: c}
}

// NewResponseValidator returns a validator only when strict contract checks
// are enabled, and nil otherwise.
func NewResponseValidator(cfg *config.EndpointConfig, c *Contract) requester.ResponseValidator {
	if !cfg.StrictContract {
		return nil
	}
	return NewValidator(c)
}

// ValidateResponse implements requester.ResponseValidator.
func (v *Validator) ValidateResponse(ctx context.Context, route requester.Route, resp *requester.Response) error {
	probe, err := newProbeRequest(ctx, route)
	if err != nil {
		return &ValidationError{Route: route, Err: err}
	}
	found, pathParams, err := v.contract.router.FindRoute(probe)
	if err != nil {
		return &ValidationError{Route: route, Err: err}
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    probe,
			PathParams: pathParams,
			Route:      found,
		},
		Status: resp.StatusCode,
		Header: resp.Headers,
		Body:   io.NopCloser(bytes.NewReader(resp.Body)),
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
		},
	}
	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return &ValidationError{Route: route, Err: err}
	}
	return nil
}

// newProbeRequest builds a body-less request used only for route matching.
func newProbeRequest(ctx context.Context, route requester.Route) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, route.Method, route.Path, nil)
}
