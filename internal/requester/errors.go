package requester

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// APIError is returned for every non-2xx backend response.
type APIError struct {
	StatusCode int
	Status     string
	// Message is the backend's "error" field, or the HTTP status text when
	// the body carries none.
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(resp *Response) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    errorMessage(resp),
	}
}

func errorMessage(resp *Response) string {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &body); err == nil && len(body.Error) > 0 {
		var msg string
		if err := json.Unmarshal(body.Error, &msg); err == nil && msg != "" {
			return msg
		}
	}
	return statusText(resp)
}

// statusText prefers the reason phrase the server sent, then the standard
// text for the code.
func statusText(resp *Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); reason != "" {
		return reason
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
