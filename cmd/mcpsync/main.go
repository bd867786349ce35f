package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/brizzai/mcp-sync-console/internal/requester"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	Execute()
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(err)
		stop()
		os.Exit(1)
	}
}

func printError(err error) {
	var apiErr *requester.APIError
	if errors.As(err, &apiErr) {
		pterm.Error.Printfln("%s (HTTP %d)", apiErr.Message, apiErr.StatusCode)
		return
	}
	pterm.Error.Println(err)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mcpsync",
		Short: "Admin console for the MCP configuration sync service",
		Long: `mcpsync manages the master MCP configuration of the sync service and the
tools synchronized from it.

Without a subcommand it opens the interactive console. The subcommands script the
same operations, and "serve" exposes them to MCP clients.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			versionFlag, _ := cmd.Flags().GetBool("version")
			if versionFlag {
				pterm.Info.WithWriter(cmd.OutOrStdout()).Println(config.GetVersionInfo())
				os.Exit(0)
			}
		},
		RunE: runConsole,
	}

	config.BindFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")

	rootCmd.AddCommand(
		newToolsCmd(),
		newMasterCmd(),
		newRecommendedCmd(),
		newApplyCmd(),
		newSyncCmd(),
		newHistoryCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// runConsole opens the interactive console.
func runConsole(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printf("\nCaught panic: %v\n", r)
			pterm.Error.Printf("%s\n", debug.Stack())
			os.Exit(2)
		}
	}()

	return withConsole(cmd)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			pterm.Info.WithWriter(cmd.OutOrStdout()).Println(config.GetVersionInfo())
		},
	}
}
