package tui

import (
	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/brizzai/mcp-sync-console/internal/tui/views"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type section int

const (
	sectionTools section = iota
	sectionRecommended
	sectionHistory
	sectionCount
)

// MainPageKeyMap holds key bindings for the dashboard actions
type MainPageKeyMap struct {
	next    key.Binding
	up      key.Binding
	down    key.Binding
	toggle  key.Binding
	diff    key.Binding
	sync    key.Binding
	syncAll key.Binding
	rescan  key.Binding
	importR key.Binding
	edit    key.Binding
	export  key.Binding
	copy    key.Binding
	dismiss key.Binding
	quit    key.Binding
}

func newMainPageKeyMap() *MainPageKeyMap {
	return &MainPageKeyMap{
		next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next section"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Down"),
		),
		toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Toggle diff"),
		),
		diff: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Diff viewer"),
		),
		sync: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sync tool"),
		),
		syncAll: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Sync all"),
		),
		rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rescan"),
		),
		importR: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Add to master"),
		),
		edit: key.NewBinding(
			key.WithKeys("e", "E"),
			key.WithHelp("e", "Edit master"),
		),
		export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Export master"),
		),
		copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy master"),
		),
		dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Dismiss"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("ctrl+c/q", "Quit"),
		),
	}
}

func (k MainPageKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.sync, k.syncAll, k.rescan, k.importR, k.edit, k.diff, k.quit}
}

func (k MainPageKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.up, k.down, k.toggle, k.diff},
		{k.sync, k.syncAll, k.rescan, k.importR},
		{k.edit, k.export, k.copy, k.dismiss, k.quit},
	}
}

// MainPageModel is the dashboard showing tools, recommended servers and
// history of the current console state.
type MainPageModel struct {
	keys     *MainPageKeyMap
	help     help.Model
	width    int
	height   int
	state    console.State
	catalog  console.Catalog
	focus    section
	cursor   [sectionCount]int
	expanded string
}

// NewMainPageModel creates a new dashboard model
func NewMainPageModel(catalog console.Catalog) MainPageModel {
	return MainPageModel{
		keys:    newMainPageKeyMap(),
		help:    help.New(),
		catalog: catalog,
	}
}

// WithState returns the dashboard showing s, keeping selections in range.
func (m MainPageModel) WithState(s console.State) MainPageModel {
	m.state = s
	sizes := m.sizes()
	for i := range m.cursor {
		if m.cursor[i] >= sizes[i] {
			m.cursor[i] = max(sizes[i]-1, 0)
		}
	}
	if _, ok := s.Tool(m.expanded); !ok {
		m.expanded = ""
	}
	return m
}

func (m MainPageModel) sizes() [sectionCount]int {
	return [sectionCount]int{len(m.state.Tools), len(m.state.Recommended), len(m.state.History)}
}

// Init initializes the model
func (m MainPageModel) Init() tea.Cmd {
	return nil
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Update handles messages for the dashboard
func (m MainPageModel) Update(msg tea.Msg) (MainPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MainPageModel) handleKey(msg tea.KeyMsg) (MainPageModel, tea.Cmd) {
	sizes := m.sizes()
	busy := m.state.Busy()

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.focus = (m.focus + 1) % sectionCount
	case key.Matches(msg, m.keys.up):
		if m.cursor[m.focus] > 0 {
			m.cursor[m.focus]--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor[m.focus] < sizes[m.focus]-1 {
			m.cursor[m.focus]++
		}
	case key.Matches(msg, m.keys.dismiss):
		return m, send(DismissMsg{})
	case key.Matches(msg, m.keys.edit):
		if m.state.Master != nil {
			return m, send(OpenEditorMsg{})
		}
	case key.Matches(msg, m.keys.export):
		if m.state.Master != nil {
			return m, send(OpenExportMsg{})
		}
	case key.Matches(msg, m.keys.copy):
		if m.state.Master != nil {
			return m, send(CopyMsg{What: m.catalog.CopyMaster, Text: m.state.Draft})
		}
	case key.Matches(msg, m.keys.toggle):
		if tool, ok := m.selectedTool(); ok && m.state.DiffFor(tool) != nil {
			if m.expanded == tool {
				m.expanded = ""
			} else {
				m.expanded = tool
			}
		}
	case key.Matches(msg, m.keys.diff):
		if tool, ok := m.selectedTool(); ok {
			return m, send(OpenDiffMsg{Tool: tool})
		}
	case busy:
		// Actions below are disabled while a request is running.
	case key.Matches(msg, m.keys.rescan):
		return m, send(RescanMsg{})
	case key.Matches(msg, m.keys.syncAll):
		return m, send(SyncMsg{})
	case key.Matches(msg, m.keys.sync):
		if tool, ok := m.selectedTool(); ok {
			return m, send(SyncMsg{Tool: tool})
		}
	case key.Matches(msg, m.keys.importR):
		if m.focus == sectionRecommended && m.recommended().ImportEnabled(m.cursor[sectionRecommended]) {
			server := m.state.Recommended[m.cursor[sectionRecommended]]
			return m, send(ImportMsg{ServerID: server.ID, Enabled: server.DefaultEnabled})
		}
	}
	return m, nil
}

func (m MainPageModel) selectedTool() (string, bool) {
	if m.focus != sectionTools || len(m.state.Tools) == 0 {
		return "", false
	}
	return m.state.Tools[m.cursor[sectionTools]].Name, true
}

func (m MainPageModel) recommended() views.RecommendedList {
	selected := -1
	if m.focus == sectionRecommended {
		selected = m.cursor[sectionRecommended]
	}
	return views.RecommendedList{
		Servers:   m.state.Recommended,
		Installed: m.state.InstalledIDs,
		Selected:  selected,
		Busy:      m.state.Busy(),
		Catalog:   m.catalog,
	}
}

func (m MainPageModel) section(s section, title, actions, body string) string {
	header := titleStyle.Render(title)
	if actions != "" {
		header += "  " + actions
	}
	style := sectionStyle
	if m.focus == s {
		style = focusedSectionStyle
	}
	if m.width > 8 {
		style = style.Width(m.width - 8)
	}
	return style.Render(header + "\n\n" + body)
}

// View renders the dashboard
func (m MainPageModel) View() string {
	c := m.catalog
	s := m.state
	busy := s.Busy()

	selectedTool := -1
	if m.focus == sectionTools {
		selectedTool = m.cursor[sectionTools]
	}

	tools := views.ToolTable{
		Tools:    s.Tools,
		Diffs:    s.Diffs,
		Selected: selectedTool,
		Expanded: m.expanded,
		Busy:     busy,
		Catalog:  c,
	}.Render()
	toolActions := views.Button(c.Rescan+" (r)", !busy) + " " + views.Button(c.SyncAll+" (S)", !busy)

	master := c.NoMaster
	if s.Master != nil {
		ids := s.Master.Settings.ServerIDs()
		master = c.ServerSummary(ids)
		if s.DraftDirty() {
			master += "  " + statusMessageStyle("● "+c.Unsaved)
		}
	}

	history := views.HistoryList{Entries: s.History, Catalog: c}.Render()

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(c.Title)+"  "+helpStyle.Render(c.Subtitle),
		"",
		editHeaderStyle.Render(c.SectionMaster)+" "+master,
		"",
		m.section(sectionTools, c.SectionTools, toolActions, tools),
		m.section(sectionRecommended, c.SectionRecommended, helpStyle.Render(c.RecommendedSubtitle), m.recommended().Render()),
		m.section(sectionHistory, c.SectionHistory, "", history),
		"",
		m.help.View(m.keys),
	)
	return content
}
