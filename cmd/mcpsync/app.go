package main

import (
	"fmt"
	"io"

	"github.com/brizzai/mcp-sync-console/internal/api"
	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/brizzai/mcp-sync-console/internal/contract"
	"github.com/brizzai/mcp-sync-console/internal/logger"
	"github.com/brizzai/mcp-sync-console/internal/requester"
	"github.com/brizzai/mcp-sync-console/internal/server"
	"github.com/brizzai/mcp-sync-console/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// setup loads the configuration for cmd, initializes logging and fills
// targets from the dependency graph. Interactive sessions log to a file.
func setup(cmd *cobra.Command, interactive bool, targets ...any) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logging := cfg.Logging
	if interactive {
		logging = logger.Interactive(logging)
	}
	if err := logger.InitLogger(&logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := fx.New(
		fx.WithLogger(logger.FxLogger),
		fx.Supply(cfg, &cfg.Endpoint),
		contract.Module,
		requester.Module,
		api.Module,
		console.Module,
		server.Module,
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// cli is what the scripted subcommands work with.
type cli struct {
	client  *api.Client
	catalog console.Catalog
	out     io.Writer
	errOut  io.Writer
}

func newCLI(cmd *cobra.Command) (*cli, error) {
	c := &cli{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	if _, err := setup(cmd, false, &c.client, &c.catalog); err != nil {
		return nil, err
	}
	return c, nil
}

func withConsole(cmd *cobra.Command) error {
	var ctrl *console.Controller
	if _, err := setup(cmd, true, &ctrl); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	return tui.Run(cmd.Context(), ctrl)
}
