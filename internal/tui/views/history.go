package views

import (
	"sort"
	"strings"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/brizzai/mcp-sync-console/internal/models"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// HistoryList renders sync history entries, newest first.
type HistoryList struct {
	Entries []models.SyncHistoryEntry
	// Limit caps the rendered entries; zero renders all of them.
	Limit    int
	Location *time.Location
	Catalog  console.Catalog
}

// SortedHistory returns a copy of entries ordered newest first. Entries with
// the same timestamp keep their order.
func SortedHistory(entries []models.SyncHistoryEntry) []models.SyncHistoryEntry {
	out := append([]models.SyncHistoryEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SyncedAt.After(out[j].SyncedAt)
	})
	return out
}

func (h HistoryList) Render() string {
	c := h.Catalog
	if len(h.Entries) == 0 {
		return Empty(c.EmptyHistory)
	}

	loc := h.Location
	if loc == nil {
		loc = time.Local
	}

	entries := SortedHistory(h.Entries)
	if h.Limit > 0 && len(entries) > h.Limit {
		entries = entries[:h.Limit]
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		label := c.StatusLabel(e.Status)
		switch e.Status.Outcome() {
		case models.OutcomeUpdated:
			label = successStyle.Render(label)
		case models.OutcomeKept:
			label = subtitleStyle.Render(label)
		default:
			label = errorStyle.Render(label)
		}

		line := selectedStyle.Render(e.Tool) + "  " + label + "  " + faint.Render(e.SyncedAt.In(loc).Format(historyTimeLayout))
		if e.Message != "" {
			line += "\n  " + e.Message
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
