package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/brizzai/mcp-sync-console/internal/console"
	"github.com/brizzai/mcp-sync-console/internal/logger"
	"github.com/brizzai/mcp-sync-console/internal/tui/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type page int

const (
	pageMain page = iota
	pageEditor
	pageDiff
	pageExport
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// AppModel is the main application model that manages page switching and
// forwards user intents to the console controller
type AppModel struct {
	ctx     context.Context
	ctrl    *console.Controller
	catalog console.Catalog
	state   console.State

	mainPage   MainPageModel
	editor     MasterEditorModel
	diffView   DiffView
	exportView ExportView
	body       viewport.Model
	spinner    spinner.Model
	notice     noticeMsg

	page   page
	width  int
	height int
}

// NewAppModel creates a new AppModel driving ctrl. Controller operations run
// with ctx.
func NewAppModel(ctx context.Context, ctrl *console.Controller) AppModel {
	catalog := ctrl.Catalog()
	state := ctrl.State()
	return AppModel{
		ctx:      ctx,
		ctrl:     ctrl,
		catalog:  catalog,
		state:    state,
		mainPage: NewMainPageModel(catalog).WithState(state),
		body:     viewport.New(0, 0),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		page:     pageMain,
	}
}

// Init starts the spinner and the bootstrap fetches
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.run(m.ctrl.Bootstrap),
	)
}

// run executes a controller operation off the event loop and refreshes the
// state once it is done.
func (m AppModel) run(op func(ctx context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		op(ctx)
		return stateChangedMsg{}
	}
}

func (m AppModel) refresh() AppModel {
	m.state = m.ctrl.State()
	m.mainPage = m.mainPage.WithState(m.state)
	switch m.page {
	case pageEditor:
		m.editor = m.editor.WithState(m.state)
	case pageDiff:
		m.diffView = m.diffView.WithState(m.state)
	}
	return m
}

// Update handles app-level messages and delegates to the active page
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		return m.refresh(), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		m.body.Width = msg.Width - h
		m.body.Height = max(msg.Height-v-2, 1)
		m.mainPage, _ = m.mainPage.Update(msg)
		switch m.page {
		case pageEditor:
			m.editor, _ = m.editor.Update(msg, nil)
		case pageDiff:
			m.diffView, _ = m.diffView.Update(msg)
		case pageExport:
			m.exportView, _ = m.exportView.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case BackToMainMsg:
		m.page = pageMain
		return m.refresh(), nil

	case OpenEditorMsg:
		m.page = pageEditor
		m.editor = NewMasterEditor(m.catalog, m.state.Draft)
		if m.width > 0 {
			m.editor, _ = m.editor.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height}, nil)
		}
		m.editor = m.editor.WithState(m.state)
		return m, m.editor.Init()

	case OpenDiffMsg:
		m.page = pageDiff
		m.diffView = NewDiffView(m.catalog, msg.Tool, m.width, m.height).WithState(m.state)
		return m, nil

	case OpenExportMsg:
		if m.state.Master == nil {
			return m, nil
		}
		m.page = pageExport
		m.exportView = NewExportView(m.state.Master.Settings)
		m.exportView, _ = m.exportView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return m, m.exportView.Init()

	case RescanMsg:
		return m, m.run(m.ctrl.Rescan)

	case SyncMsg:
		tool := msg.Tool
		return m, m.run(func(ctx context.Context) {
			_, _ = m.ctrl.Sync(ctx, tool)
		})

	case ImportMsg:
		return m, m.run(func(ctx context.Context) {
			m.ctrl.ImportRecommended(ctx, msg.ServerID, msg.Enabled)
		})

	case SaveDraftMsg:
		return m, m.run(m.ctrl.SaveMasterConfig)

	case DismissMsg:
		m.notice = noticeMsg{}
		m.ctrl.DismissMessage()
		return m.refresh(), nil

	case CopyMsg:
		if err := writeClipboard(msg.Text); err != nil {
			logger.Warn("Clipboard write failed", zap.Error(err))
			m.notice = noticeMsg{text: m.catalog.CopyError(msg.What, err), err: true}
		} else {
			m.notice = noticeMsg{text: m.catalog.Copied(msg.What)}
		}
		return m, nil

	case noticeMsg:
		m.notice = msg
		return m, nil
	}

	var cmd tea.Cmd
	switch m.page {
	case pageMain:
		if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "pgup" || key.String() == "pgdown") {
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
		m.mainPage, cmd = m.mainPage.Update(msg)
	case pageEditor:
		m.editor, cmd = m.editor.Update(msg, m.ctrl.EditDraft)
	case pageDiff:
		m.diffView, cmd = m.diffView.Update(msg)
	case pageExport:
		m.exportView, cmd = m.exportView.Update(msg)
	}
	return m, cmd
}

func (m AppModel) statusLine() string {
	parts := []string{}
	if m.state.Busy() {
		parts = append(parts, m.spinner.View()+" "+m.catalog.Activity(m.state.Status()))
	}
	if toast := views.Toast(m.state.Error, m.state.Success); toast != "" {
		parts = append(parts, toast)
	}
	if m.notice.text != "" {
		if m.notice.err {
			parts = append(parts, statusMessageStyle(m.notice.text))
		} else {
			parts = append(parts, completeMessageStyle(m.notice.text))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(parts)...)
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, "   ")
		}
		out = append(out, p)
	}
	return out
}

// View renders the active page
func (m AppModel) View() string {
	var content string
	switch m.page {
	case pageEditor:
		content = m.editor.View()
	case pageDiff:
		content = m.diffView.View()
	case pageExport:
		content = m.exportView.View()
	default:
		m.body.SetContent(m.mainPage.View())
		content = m.body.View()
	}
	return docStyle.Render(m.statusLine() + "\n" + content)
}

// State returns the console state the model currently shows.
func (m AppModel) State() console.State {
	return m.state
}
