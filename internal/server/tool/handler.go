// Package tool adapts console operations to MCP tool handlers.
package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/brizzai/mcp-sync-console/internal/logger"
	"github.com/brizzai/mcp-sync-console/internal/requester"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// Executor runs one operation against the backend. The returned value is
// sent to the caller as indented JSON text.
type Executor func(ctx context.Context, args Arguments) (any, error)

// ArgumentError reports a tool argument the caller got wrong.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Reason)
}

// Handler turns executors into MCP tool handlers.
type Handler struct {
	log *zap.Logger
}

// NewHandler creates a new tool handler.
func NewHandler() *Handler {
	return &Handler{log: logger.With(zap.String("component", "mcp_tool"))}
}

// CreateHandler creates a handler function for a specific tool.
// Backend and argument errors become tool errors carrying their message;
// anything else is returned as a protocol error.
func (h *Handler) CreateHandler(tool *mcp.Tool, executor Executor) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		h.log.Debug("Tool call", zap.String("tool", tool.Name))

		result, err := executor(ctx, Arguments(request.GetArguments()))
		if err != nil {
			var apiErr *requester.APIError
			var argErr *ArgumentError
			switch {
			case errors.As(err, &apiErr):
				h.log.Error("Backend rejected tool call",
					zap.String("tool", tool.Name),
					zap.Int("status", apiErr.StatusCode),
					zap.String("error", apiErr.Message),
				)
				return mcp.NewToolResultError(apiErr.Message), nil
			case errors.As(err, &argErr):
				return mcp.NewToolResultError(argErr.Error()), nil
			}
			return nil, fmt.Errorf("failed to execute tool %s: %w", tool.Name, err)
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return nil, fmt.Errorf("failed to encode result of tool %s: %w", tool.Name, err)
		}
		return mcp.NewToolResultText(strings.TrimSuffix(buf.String(), "\n")), nil
	}
}
