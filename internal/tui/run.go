package tui

import (
	"context"

	"github.com/brizzai/mcp-sync-console/internal/console"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the console until the user quits or ctx is cancelled.
func Run(ctx context.Context, ctrl *console.Controller) error {
	p := tea.NewProgram(NewAppModel(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))

	// Transitions also happen inside Update (draft edits), where a blocking
	// Send would deadlock the event loop.
	ctrl.SetObserver(func(console.State) {
		go p.Send(stateChangedMsg{})
	})
	defer ctrl.SetObserver(nil)

	_, err := p.Run()
	return err
}
