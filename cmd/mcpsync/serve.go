package main

import (
	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/brizzai/mcp-sync-console/internal/logger"
	"github.com/brizzai/mcp-sync-console/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the console operations to MCP clients",
		Long: `serve starts an MCP server whose tools call the sync service:
list_tools, rescan_tools, get_master_config, update_master_config,
list_recommended_servers, import_recommended_server, sync_tools and sync_history.

In stdio mode the protocol uses stdout, so logs always go to stderr or the log file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var srv *server.Server
			if _, err := setup(cmd, false, &srv); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return srv.Start(cmd.Context())
		},
	}
	config.BindServeFlags(cmd.Flags())
	return cmd
}
