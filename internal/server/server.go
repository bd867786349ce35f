// Package server exposes the console operations as an MCP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/api"
	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/brizzai/mcp-sync-console/internal/contract"
	"github.com/brizzai/mcp-sync-console/internal/logger"
	"github.com/brizzai/mcp-sync-console/internal/server/handler"
	"github.com/brizzai/mcp-sync-console/internal/server/tool"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// shutdownTimeout is the maximum time to wait for server shutdown
	shutdownTimeout = 5 * time.Second
)

// Server is the MCP bridge. Every documented backend operation becomes one
// MCP tool. It can serve over SSE, streamable HTTP or STDIO.
type Server struct {
	config  *config.ServerConfig
	mcp     *mcpserver.MCPServer
	handler *handler.Handler
	tool    *tool.Handler
	tools   []string
}

// NewServer registers one tool per contract operation, each backed by the
// matching Backend call.
func NewServer(cfg *config.Config, c *contract.Contract, backend Backend) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if c == nil {
		return nil, errors.New("contract cannot be nil")
	}
	if backend == nil {
		return nil, errors.New("backend cannot be nil")
	}

	srv := &Server{
		config:  &cfg.Server,
		mcp:     mcpserver.NewMCPServer(cfg.Server.Name, cfg.Server.Version, mcpserver.WithToolCapabilities(false)),
		handler: handler.NewHandler(cfg.Server.Name, cfg.Server.Version),
		tool:    tool.NewHandler(),
	}

	if err := srv.setupTools(c, executors(backend)); err != nil {
		return nil, err
	}
	return srv, nil
}

func (s *Server) setupTools(c *contract.Contract, execs map[string]tool.Executor) error {
	for _, op := range c.Operations() {
		executor, ok := execs[op.ID]
		if !ok {
			return fmt.Errorf("no backend call serves operation %s (%s %s)", op.ID, op.Route.Method, op.Route.Path)
		}
		t := op.Tool
		s.mcp.AddTool(t, s.tool.CreateHandler(&t, executor))
		s.tools = append(s.tools, t.Name)
		logger.Debug("Registered tool", zap.String("name", t.Name))
	}
	return nil
}

// Tools returns the registered tool names in contract order.
func (s *Server) Tools() []string {
	out := make([]string, len(s.tools))
	copy(out, s.tools)
	return out
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

func (s *Server) ServeSSE(ctx context.Context) error {
	sseServer := mcpserver.NewSSEServer(
		s.mcp,
		mcpserver.WithBaseURL("http://"+s.addr()),
	)
	return s.serveHTTP(ctx, sseServer, "SSE")
}

func (s *Server) ServeHTTP(ctx context.Context) error {
	httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
	return s.serveHTTP(ctx, httpServer, "HTTP")
}

func (s *Server) serveHTTP(ctx context.Context, mcpHandler http.Handler, mode string) error {
	addr := s.addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           s.handler.CreateHTTPHandler(mcpHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel for server errors
	errChan := make(chan error, 1)

	go func() {
		logger.Info("Starting server",
			zap.String("mode", mode),
			zap.String("address", addr),
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server",
			zap.String("mode", mode),
			zap.Duration("timeout", shutdownTimeout),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}

// ServeSTDIO serves on stdin and stdout.
func (s *Server) ServeSTDIO(ctx context.Context) error {
	return s.serveStream(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serveStream(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.Info("Starting STDIO server")
	stdioServer := mcpserver.NewStdioServer(s.mcp)
	err := stdioServer.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Start starts the server in the configured mode (SSE, HTTP, or STDIO).
// It returns an error if the server fails to start or encounters an error
// during operation.
func (s *Server) Start(ctx context.Context) error {
	logger.Info("Starting MCP bridge",
		zap.String("mode", string(s.config.Mode)),
		zap.String("version", s.config.Version),
		zap.Int("tools", len(s.tools)),
	)

	switch s.config.Mode {
	case config.ServerModeSSE:
		return s.ServeSSE(ctx)
	case config.ServerModeHTTP:
		return s.ServeHTTP(ctx)
	case config.ServerModeSTDIO:
		return s.ServeSTDIO(ctx)
	default:
		return fmt.Errorf("unsupported server mode: %s", s.config.Mode)
	}
}

// Module provides the MCP server dependencies
var Module = fx.Module("mcp_server",
	fx.Provide(
		func(c *api.Client) Backend { return c },
		NewServer,
	),
)
