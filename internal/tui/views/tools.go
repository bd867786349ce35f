package views

import (
	"strings"

	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ToolTable renders one row per tool with its diff state and sync action.
type ToolTable struct {
	Tools    []models.Tool
	Diffs    map[string]*models.ConfigDiff
	Selected int
	// Expanded names the tool whose diff is shown below the table.
	Expanded string
	Busy     bool
	Catalog  console.Catalog
}

// DiffCell is the text of the diff column.
func DiffCell(diff *models.ConfigDiff, c console.Catalog) string {
	if diff == nil {
		return c.Identical
	}
	return c.ShowDiff
}

func toolName(t models.Tool) string {
	if t.Version == "" {
		return t.Name
	}
	return t.Name + " (" + t.Version + ")"
}

func (t ToolTable) Render() string {
	c := t.Catalog
	if len(t.Tools) == 0 {
		return Empty(c.EmptyTools)
	}

	rows := make([][]string, 0, len(t.Tools))
	for _, tool := range t.Tools {
		rows = append(rows, []string{
			toolName(tool),
			tool.ConfigPath,
			DiffCell(t.Diffs[tool.Name], c),
			"[ " + c.Sync + " ]",
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(subtitleStyle).
		Headers(c.ColTool, c.ColPath, c.ColDiff, c.ColAction).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Bold(true)
			case col == 3 && t.Busy:
				return style.Inherit(disabledStyle)
			case row == t.Selected:
				return style.Inherit(selectedStyle)
			case col == 2 && row >= 0 && row < len(t.Tools) && t.Diffs[t.Tools[row].Name] == nil:
				return style.Inherit(successStyle)
			}
			return style
		})

	out := tbl.String()
	if diff, ok := t.Diffs[t.Expanded]; ok && diff != nil {
		out += "\n" + faint.Render(t.Expanded) + "\n" + DiffJSON(diff)
	}
	return out
}

// DiffJSON renders a diff as indented JSON holding both server lists.
func DiffJSON(diff *models.ConfigDiff) string {
	var sb strings.Builder
	sb.WriteString("{\n  \"master\": ")
	sb.WriteString(indentTail(PrettyJSON(diff.Master), "  "))
	sb.WriteString(",\n  \"tool\": ")
	sb.WriteString(indentTail(PrettyJSON(diff.Tool), "  "))
	sb.WriteString("\n}")
	return sb.String()
}

// indentTail prefixes every line but the first.
func indentTail(text, prefix string) string {
	return strings.ReplaceAll(text, "\n", "\n"+prefix)
}
