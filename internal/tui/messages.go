package tui

// stateChangedMsg tells the program to read a fresh controller snapshot.
type stateChangedMsg struct{}

// BackToMainMsg signals to go back to the dashboard
type BackToMainMsg struct{}

type OpenEditorMsg struct{}

type OpenDiffMsg struct {
	Tool string
}

type OpenExportMsg struct{}

type RescanMsg struct{}

// SyncMsg syncs Tool, or every tool when Tool is empty.
type SyncMsg struct {
	Tool string
}

type ImportMsg struct {
	ServerID string
	Enabled  bool
}

type SaveDraftMsg struct{}

type DismissMsg struct{}

// CopyMsg puts Text on the system clipboard.
type CopyMsg struct {
	What string
	Text string
}

// noticeMsg is a local status line that is not part of the console state.
type noticeMsg struct {
	text string
	err  bool
}
