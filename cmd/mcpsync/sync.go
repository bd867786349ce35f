package main

import (
	"fmt"

	"github.com/brizzai/mcp-sync-console/internal/tui/views"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is how many history entries `history` prints by default.
const defaultHistoryLimit = 10

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [tool]",
		Short: "Write the master configuration into one tool, or all tools",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCLI(cmd)
			if err != nil {
				return err
			}
			tool := ""
			if len(args) == 1 {
				tool = args[0]
			}
			summaries, err := c.client.SyncTools(cmd.Context(), tool)
			if err != nil {
				return err
			}
			c.success("%s", c.catalog.SyncDone)
			return c.printSummaries(summaries)
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sync attempts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			c, err := newCLI(cmd)
			if err != nil {
				return err
			}
			history, err := c.client.FetchSyncHistory(cmd.Context())
			if err != nil {
				return err
			}
			if len(history) == 0 {
				c.empty(c.catalog.EmptyHistory)
				return nil
			}
			history = views.SortedHistory(history)
			if limit > 0 && len(history) > limit {
				history = history[:limit]
			}
			return c.printSummaries(history)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Maximum number of entries to show (0 shows all)")
	return cmd
}

func newApplyCmd() *cobra.Command {
	var (
		rule, agent string
		enabled     bool
	)
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Import a recommended server into the master configuration, then sync one tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCLI(cmd)
			if err != nil {
				return err
			}
			var choice *bool
			if cmd.Flags().Changed("enabled") {
				choice = &enabled
			}
			if _, err := c.client.ImportRecommendedServer(cmd.Context(), rule, choice); err != nil {
				return err
			}
			c.success("%s", c.catalog.ImportDone)

			summaries, err := c.client.SyncTools(cmd.Context(), agent)
			if err != nil {
				return err
			}
			return c.printSummaries(summaries)
		},
	}
	cmd.Flags().StringVar(&rule, "rule", "", "Id of the recommended server to import")
	cmd.Flags().StringVar(&agent, "agent", "", "Tool to sync afterwards")
	cmd.Flags().BoolVar(&enabled, "enabled", false, "Whether the server starts enabled (default: the preset's default)")
	_ = cmd.MarkFlagRequired("rule")
	_ = cmd.MarkFlagRequired("agent")
	return cmd
}
