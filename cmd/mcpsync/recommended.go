package main

import (
	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newRecommendedCmd() *cobra.Command {
	recommendedCmd := &cobra.Command{
		Use:   "recommended",
		Short: "Browse recommended server presets",
	}
	recommendedCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recommended servers and whether they are already in the master configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCLI(cmd)
			if err != nil {
				return err
			}
			servers, err := c.client.FetchRecommendedServers(cmd.Context())
			if err != nil {
				return err
			}
			if len(servers) == 0 {
				c.empty(c.catalog.EmptyRecommended)
				return nil
			}
			master, err := c.client.FetchMasterConfig(cmd.Context())
			if err != nil {
				return err
			}
			installed := console.InstalledIDs(master)

			cat := c.catalog
			data := pterm.TableData{{"ID", "Name", "Category", cat.Endpoint, cat.APIKey, "Default", cat.Installed}}
			for _, s := range servers {
				_, ok := installed[s.ID]
				data = append(data, []string{
					s.ID,
					s.Name,
					s.Category,
					s.Endpoint,
					yesNo(s.APIKeyRequired, cat.Required, cat.NotRequired),
					yesNo(s.DefaultEnabled, cat.DefaultOn, cat.DefaultOff),
					yesNo(ok, "✓", ""),
				})
			}
			return c.table(data)
		},
	})
	return recommendedCmd
}
