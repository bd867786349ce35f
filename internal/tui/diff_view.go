package tui

import (
	"fmt"

	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/brizzai/mcp-sync-console/internal/tui/views"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DiffView shows the server lists of one tool next to master's.
type DiffView struct {
	tool     string
	state    console.State
	catalog  console.Catalog
	viewport viewport.Model
}

func NewDiffView(catalog console.Catalog, tool string, width, height int) DiffView {
	vp := viewport.New(width, max(height-4, 5))
	return DiffView{tool: tool, catalog: catalog, viewport: vp}
}

// WithState re-renders the diff for s.
func (m DiffView) WithState(s console.State) DiffView {
	m.state = s
	m.viewport.SetContent(views.DiffPanel(m.tool, s.DiffFor(m.tool), m.catalog))
	return m
}

func (m DiffView) Init() tea.Cmd {
	return nil
}

func (m DiffView) Update(msg tea.Msg) (DiffView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, send(BackToMainMsg{})
		case "y":
			if diff := m.state.DiffFor(m.tool); diff != nil {
				return m, send(CopyMsg{What: fmt.Sprintf(m.catalog.CopyToolDiff, m.tool), Text: views.DiffJSON(diff)})
			}
			return m, nil
		case "s":
			if !m.state.Busy() {
				return m, send(SyncMsg{Tool: m.tool})
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 5)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DiffView) View() string {
	return m.viewport.View() + "\n" + helpStyle.Render("(s) sync | (y) copy | (esc) back")
}
