package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"
)

// ExportView handles prompting for a filename and exporting the master
// settings
type ExportView struct {
	settings     models.Settings
	textInput    textinput.Model
	err          error
	width        int
	height       int
	exportStatus string
	Success      bool
}

// NewExportView creates a new export view
func NewExportView(settings models.Settings) ExportView {
	ti := textinput.New()
	ti.Placeholder = "master.yaml"
	ti.Focus()
	ti.Width = 40

	return ExportView{
		settings:  settings,
		textInput: ti,
	}
}

// Init initializes the export view
func (m ExportView) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the export view
func (m ExportView) Update(msg tea.Msg) (ExportView, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, send(BackToMainMsg{})
		case "enter":
			if m.Success {
				return m, nil
			}
			if strings.TrimSpace(m.textInput.Value()) == "" {
				m.exportStatus = "Please enter a filename"
				return m, nil
			}

			filename := exportFilename(m.textInput.Value())
			if err := ExportMasterSettings(m.settings, filename); err != nil {
				m.err = err
				m.exportStatus = fmt.Sprintf("Error exporting: %v", err)
				return m, nil
			}

			m.Success = true
			m.exportStatus = completeMessageStyle(fmt.Sprintf("Successfully exported to %s", filename))
			return m, tea.Batch(
				send(noticeMsg{text: "Exported master configuration to " + filename}),
				tea.Tick(time.Second, func(time.Time) tea.Msg {
					return BackToMainMsg{}
				}),
			)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the export view
func (m ExportView) View() string {
	var sb strings.Builder

	verticalPadding := (m.height - 6) / 2
	for i := 0; i < verticalPadding; i++ {
		sb.WriteString("\n")
	}

	title := titleStyle.Render("Export Master Configuration")
	sb.WriteString(centerText(title, m.width))
	sb.WriteString("\n\n")

	prompt := "Enter filename (.yaml, .yml or .json):"
	sb.WriteString(centerText(prompt, m.width))
	sb.WriteString("\n")

	input := m.textInput.View()
	sb.WriteString(centerText(input, m.width))
	sb.WriteString("\n\n")

	if m.exportStatus != "" {
		sb.WriteString(centerText(m.exportStatus, m.width))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(centerText("(esc) Back to main | (enter) Export", m.width))

	return sb.String()
}

// exportFilename appends .yaml unless name already ends in a supported
// extension.
func exportFilename(name string) string {
	name = strings.TrimSpace(name)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return name
	}
	return name + ".yaml"
}

// ExportMasterSettings writes settings to filename as JSON when the name ends
// in .json and as YAML otherwise. Key order is preserved in both formats.
func ExportMasterSettings(settings models.Settings, filename string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		var text string
		text, err = settings.Pretty()
		data = []byte(text + "\n")
	} else {
		data, err = yaml.Marshal(settings)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0o644)
}

// Helper function to center text horizontally
func centerText(text string, width int) string {
	if width <= len(text) {
		return text
	}

	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
