package views

import (
	"strings"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/console"
)

// Editor frames the master draft text area.
type Editor struct {
	// Body is the rendered text area bound to the draft.
	Body      string
	UpdatedAt *time.Time
	Dirty     bool
	Busy      bool
	Location  *time.Location
	Catalog   console.Catalog
}

func (e Editor) Render() string {
	c := e.Catalog
	var sb strings.Builder

	sb.WriteString(SectionTitle(c.SectionMaster))
	if e.UpdatedAt != nil {
		loc := e.Location
		if loc == nil {
			loc = time.Local
		}
		sb.WriteString("  " + faint.Render(c.UpdatedAt+": "+e.UpdatedAt.In(loc).Format(historyTimeLayout)))
	}
	if e.Dirty {
		sb.WriteString("  " + errorStyle.Render("● "+c.Unsaved))
	}
	sb.WriteString("\n\n")
	sb.WriteString(e.Body)
	sb.WriteString("\n\n")
	sb.WriteString(Button(c.Save+" (ctrl+s)", !e.Busy))
	return sb.String()
}
