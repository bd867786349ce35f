package main

import (
	"fmt"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/pterm/pterm"
)

const timeLayout = "2006-01-02 15:04:05"

func (c *cli) table(data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithWriter(c.out).WithData(data).Render()
}

func (c *cli) info(format string, args ...any) {
	pterm.Info.WithWriter(c.errOut).Printfln(format, args...)
}

func (c *cli) success(format string, args ...any) {
	pterm.Success.WithWriter(c.errOut).Printfln(format, args...)
}

// empty prints an empty-state placeholder. Empty states are not errors.
func (c *cli) empty(text string) {
	pterm.Warning.WithWriter(c.out).Println(text)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func toolLabel(t models.Tool) string {
	if t.Version == "" {
		return t.Name
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Version)
}

func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

func (c *cli) printSummaries(summaries []models.SyncSummary) error {
	if len(summaries) == 0 {
		c.empty(c.catalog.EmptyTools)
		return nil
	}
	data := pterm.TableData{{c.catalog.ColTool, c.catalog.ColStatus, c.catalog.ColMessage, c.catalog.ColSyncedAt}}
	for _, s := range summaries {
		at := s.SyncedAt
		data = append(data, []string{s.Tool, c.catalog.StatusLabel(s.Status), s.Message, formatTime(&at)})
	}
	return c.table(data)
}

func (c *cli) printTools(tools []models.Tool, master *models.MasterConfig) error {
	if len(tools) == 0 {
		c.empty(c.catalog.EmptyTools)
		return nil
	}
	diffs := console.DiffMap(master, tools)
	data := pterm.TableData{{c.catalog.ColTool, c.catalog.ColPath, c.catalog.ColDiff}}
	for _, t := range tools {
		state := c.catalog.Identical
		if diffs[t.Name] != nil {
			state = c.catalog.Differs
		}
		data = append(data, []string{toolLabel(t), t.ConfigPath, state})
	}
	return c.table(data)
}
