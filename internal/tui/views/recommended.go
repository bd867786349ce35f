package views

import (
	"strings"

	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/charmbracelet/lipgloss"
)

// RecommendedList renders one card per recommended server.
type RecommendedList struct {
	Servers   []models.RecommendedServer
	Installed map[string]struct{}
	Selected  int
	Busy      bool
	Catalog   console.Catalog
}

// CanImport reports whether the import action of a server is available.
// A server already in the master settings can never be imported again.
func CanImport(installed, busy bool) bool {
	return !installed && !busy
}

func (l RecommendedList) installed(id string) bool {
	_, ok := l.Installed[id]
	return ok
}

// ImportEnabled reports whether the import action of the i-th server is
// available.
func (l RecommendedList) ImportEnabled(i int) bool {
	if i < 0 || i >= len(l.Servers) {
		return false
	}
	return CanImport(l.installed(l.Servers[i].ID), l.Busy)
}

// ImportLabel is the label of the import action of a server.
func (l RecommendedList) ImportLabel(server models.RecommendedServer) string {
	if l.installed(server.ID) {
		return l.Catalog.Installed
	}
	return l.Catalog.Import
}

func (l RecommendedList) Render() string {
	c := l.Catalog
	if len(l.Servers) == 0 {
		return Empty(c.EmptyRecommended)
	}

	cards := make([]string, 0, len(l.Servers))
	for i, server := range l.Servers {
		cards = append(cards, l.card(i, server))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (l RecommendedList) card(i int, server models.RecommendedServer) string {
	c := l.Catalog
	var sb strings.Builder

	header := selectedStyle.Render(server.Name)
	if server.Category != "" {
		header += " " + faint.Render("#"+server.Category)
	}
	defaults := c.DefaultOff
	if server.DefaultEnabled {
		defaults = c.DefaultOn
	}
	sb.WriteString(header + "  " + subtitleStyle.Render(defaults) + "\n")

	if server.Description != "" {
		sb.WriteString(server.Description + "\n")
	}

	apiKey := c.NotRequired
	if server.APIKeyRequired {
		apiKey = c.Required
	}
	sb.WriteString(faint.Render(c.Endpoint+": ") + codeStyle.Render(server.Endpoint) + "\n")
	sb.WriteString(faint.Render(c.APIKey+": ") + apiKey + "\n")
	if server.Homepage != "" {
		sb.WriteString(faint.Render(c.Homepage+": ") + server.Homepage + "\n")
	}

	sb.WriteString(Button(l.ImportLabel(server), l.ImportEnabled(i)))
	if server.APIKeyRequired {
		sb.WriteString("\n" + subtitleStyle.Render(c.APIKeyHint))
	}

	style := cardStyle
	if i == l.Selected {
		style = selectedCardStyle
	}
	return style.Render(sb.String())
}
