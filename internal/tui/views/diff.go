package views

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
)

// PrettyJSON indents raw JSON with two spaces. Missing values render as null
// and invalid JSON is returned as is.
func PrettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	text, err := models.CanonicalJSON(raw)
	if err != nil {
		return string(raw)
	}
	var buf bytes.Buffer
	if err = json.Indent(&buf, []byte(text), "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// DiffOp is the kind of a diff line.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffDelete
	DiffInsert
)

// DiffLine is one line of a line-level diff.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// LineDiff computes a line-level diff from before to after.
func LineDiff(before, after string) []DiffLine {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, df := range diffs {
		op := DiffEqual
		switch df.Type {
		case dmp.DiffDelete:
			op = DiffDelete
		case dmp.DiffInsert:
			op = DiffInsert
		}
		for _, line := range strings.SplitAfter(df.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

func renderLineDiff(lines []DiffLine) string {
	var sb strings.Builder
	for _, l := range lines {
		switch l.Op {
		case DiffDelete:
			sb.WriteString(diffDelLine.Render("- " + l.Text))
		case DiffInsert:
			sb.WriteString(diffAddLine.Render("+ " + l.Text))
		default:
			sb.WriteString(faint.Render("  " + l.Text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// DiffPanel renders both server lists of a tool and the line changes needed
// to turn the tool's list into master's.
func DiffPanel(tool string, diff *models.ConfigDiff, c console.Catalog) string {
	if diff == nil {
		return SectionTitle(tool) + "\n\n" + successStyle.Render(c.Identical)
	}

	master := PrettyJSON(diff.Master)
	current := PrettyJSON(diff.Tool)

	var sb strings.Builder
	sb.WriteString(SectionTitle(tool) + "\n\n")
	sb.WriteString(selectedStyle.Render(c.DiffMaster) + "\n")
	sb.WriteString(master + "\n\n")
	sb.WriteString(selectedStyle.Render(c.DiffTool) + "\n")
	sb.WriteString(current + "\n\n")
	sb.WriteString(selectedStyle.Render(c.DiffChanges) + "\n")
	sb.WriteString(renderLineDiff(LineDiff(current, master)))
	return sb.String()
}
