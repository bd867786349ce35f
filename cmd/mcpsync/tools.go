package main

import (
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the tools managed by the sync service",
	}

	toolsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List detected tools and whether they match the master configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := newCLI(cmd)
				if err != nil {
					return err
				}
				tools, err := c.client.FetchTools(cmd.Context())
				if err != nil {
					return err
				}
				master, err := c.client.FetchMasterConfig(cmd.Context())
				if err != nil {
					return err
				}
				return c.printTools(tools, master)
			},
		},
		&cobra.Command{
			Use:   "rescan",
			Short: "Re-detect installed tools",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := newCLI(cmd)
				if err != nil {
					return err
				}
				tools, err := c.client.RescanTools(cmd.Context())
				if err != nil {
					return err
				}
				c.success("%s", c.catalog.Rescanned(len(tools)))
				master, err := c.client.FetchMasterConfig(cmd.Context())
				if err != nil {
					return err
				}
				return c.printTools(tools, master)
			},
		},
	)
	return toolsCmd
}
