package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, "tool not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"tool not found"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Tool *string `json:"tool"`
	}

	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{"tool":"claude"}`))
	require.NoError(t, DecodeJSON(req, &v))
	require.NotNil(t, v.Tool)
	assert.Equal(t, "claude", *v.Tool)

	req = httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{"tool":null} {}`))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(req, &v))
}
