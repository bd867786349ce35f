package requester

import (
	"context"
	"io"
	"net/http"
)

// Route names one backend endpoint.
type Route struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// Request represents a fully built HTTP request
type Request struct {
	URL         string
	Method      string
	Path        string
	Body        io.Reader
	Headers     map[string]string
	ContentType string
	RequestID   string
	HttpRequest *http.Request // The actual HTTP request
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
	Headers    http.Header
}

// Requester sends a JSON request to the backend and decodes the JSON reply
// into out. A nil in sends no body; a nil out discards the reply.
type Requester interface {
	Do(ctx context.Context, route Route, in, out any) error
}

// ResponseValidator checks a successful response against the API contract.
type ResponseValidator interface {
	ValidateResponse(ctx context.Context, route Route, resp *Response) error
}
