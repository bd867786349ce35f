package main

import (
	"fmt"
	"io"
	"os"

	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newMasterCmd() *cobra.Command {
	masterCmd := &cobra.Command{
		Use:   "master",
		Short: "Show and change the master configuration",
	}
	masterCmd.AddCommand(
		newMasterShowCmd(),
		newMasterSetCmd(),
		newMasterImportCmd(),
		newMasterToggleCmd(),
	)
	return masterCmd
}

func newMasterShowCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the master settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("unsupported output format %q (json|yaml)", output)
			}
			c, err := newCLI(cmd)
			if err != nil {
				return err
			}
			master, err := c.client.FetchMasterConfig(cmd.Context())
			if err != nil {
				return err
			}
			c.info("%s: %s", c.catalog.UpdatedAt, formatTime(master.UpdatedAt))
			return writeSettings(c.out, master.Settings, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json|yaml)")
	return cmd
}

func writeSettings(w io.Writer, settings models.Settings, format string) error {
	if format == "yaml" {
		data, err := yaml.Marshal(settings)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	text, err := settings.Pretty()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func newMasterSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path|->",
		Short: "Replace the master settings with a JSON object read from a file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read settings: %w", err)
			}

			c, err := newCLI(cmd)
			if err != nil {
				return err
			}
			// An invalid file never reaches the backend.
			settings, err := models.ParseSettings(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", c.catalog.DraftInvalid, err)
			}
			master, err := c.client.UpdateMasterConfig(cmd.Context(), settings)
			if err != nil {
				return err
			}
			c.success("%s", c.catalog.SaveDone)
			return writeSettings(c.out, master.Settings, "json")
		},
	}
}

func newMasterImportCmd() *cobra.Command {
	var enabled bool
	cmd := &cobra.Command{
		Use:   "import <server-id>",
		Short: "Merge a recommended server into the master configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCLI(cmd)
			if err != nil {
				return err
			}
			var choice *bool
			if cmd.Flags().Changed("enabled") {
				choice = &enabled
			}
			master, err := c.client.ImportRecommendedServer(cmd.Context(), args[0], choice)
			if err != nil {
				return err
			}
			c.success("%s", c.catalog.ImportDone)
			return writeSettings(c.out, master.Settings, "json")
		},
	}
	cmd.Flags().BoolVar(&enabled, "enabled", false, "Whether the server starts enabled (default: the preset's default)")
	return cmd
}

func newMasterToggleCmd() *cobra.Command {
	var (
		on, off bool
		agent   string
	)
	cmd := &cobra.Command{
		Use:   "toggle <server-id>",
		Short: "Enable or disable one server of the master configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCLI(cmd)
			if err != nil {
				return err
			}
			master, err := c.client.FetchMasterConfig(cmd.Context())
			if err != nil {
				return err
			}

			settings, found, err := master.Settings.WithServerField(args[0], "enabled", on)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("server %q is not in the master configuration", args[0])
			}

			if _, err := c.client.UpdateMasterConfig(cmd.Context(), settings); err != nil {
				return err
			}
			c.success("%s: %s enabled=%t", c.catalog.SaveDone, args[0], on)

			if agent == "" {
				return nil
			}
			summaries, err := c.client.SyncTools(cmd.Context(), agent)
			if err != nil {
				return err
			}
			return c.printSummaries(summaries)
		},
	}
	cmd.Flags().BoolVar(&on, "on", false, "Enable the server")
	cmd.Flags().BoolVar(&off, "off", false, "Disable the server")
	cmd.Flags().StringVar(&agent, "agent", "", "Sync this tool after saving")
	cmd.MarkFlagsMutuallyExclusive("on", "off")
	cmd.MarkFlagsOneRequired("on", "off")
	return cmd
}
