package tui

import (
	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/brizzai/mcp-sync-console/internal/tui/views"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

type editorKeyMap struct {
	save key.Binding
	copy key.Binding
	back key.Binding
}

func newEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
		copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "Copy"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
	}
}

// MasterEditorModel holds the textarea bound to the master draft.
type MasterEditorModel struct {
	textarea textarea.Model
	keys     editorKeyMap
	state    console.State
	catalog  console.Catalog
}

// NewMasterEditor creates an editor with a focused textarea showing draft.
func NewMasterEditor(catalog console.Catalog, draft string) MasterEditorModel {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Placeholder = `{"servers": []}`
	ta.SetValue(draft)
	ta.Focus()

	return MasterEditorModel{
		textarea: ta,
		keys:     newEditorKeyMap(),
		catalog:  catalog,
	}
}

// Init returns the initial command for the editor (textarea blink).
func (m MasterEditorModel) Init() tea.Cmd {
	return textarea.Blink
}

// WithState adopts a new console state. The text area follows the draft
// whenever the two differ, which happens after a save or an import.
func (m MasterEditorModel) WithState(s console.State) MasterEditorModel {
	m.state = s
	if s.Draft != m.textarea.Value() {
		m.textarea.SetValue(s.Draft)
	}
	return m
}

// Update handles key events. Edits are reported through onEdit so the draft
// in the console state always matches the text area.
func (m MasterEditorModel) Update(msg tea.Msg, onEdit func(string)) (MasterEditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.back):
			return m, send(BackToMainMsg{})
		case key.Matches(msg, m.keys.copy):
			return m, send(CopyMsg{What: m.catalog.CopyMaster, Text: m.textarea.Value()})
		case key.Matches(msg, m.keys.save):
			if m.state.Busy() {
				return m, nil
			}
			return m, send(SaveDraftMsg{})
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.textarea.SetWidth(msg.Width - h)
		m.textarea.SetHeight(max(msg.Height-v-8, 5))
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if after := m.textarea.Value(); after != before && onEdit != nil {
		onEdit(after)
	}
	return m, cmd
}

// Draft returns the current value of the textarea.
func (m MasterEditorModel) Draft() string {
	return m.textarea.Value()
}

// View renders the editor.
func (m MasterEditorModel) View() string {
	e := views.Editor{
		Body:    m.textarea.View(),
		Dirty:   m.state.DraftDirty(),
		Busy:    m.state.Busy(),
		Catalog: m.catalog,
	}
	if m.state.Master != nil {
		e.UpdatedAt = m.state.Master.UpdatedAt
	}
	return e.Render() + "\n\n" + helpStyle.Render("(ctrl+s) save | (ctrl+y) copy | (esc) back")
}
