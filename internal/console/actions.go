package console

import "github.com/brizzai/mcp-sync-console/internal/models"

// Action is a state transition applied by Reduce.
type Action interface {
	isAction()
}

// ActionStarted marks an action of Kind as running and clears the message slot.
type ActionStarted struct {
	Kind Status
}

// Bootstrapped commits the four initial fetches at once.
type Bootstrapped struct {
	Tools       []models.Tool
	Master      models.MasterConfig
	History     []models.SyncHistoryEntry
	Recommended []models.RecommendedServer
}

type RescanCompleted struct {
	Tools   []models.Tool
	Message string
}

// SyncCompleted carries the refetched history. Tools is the refetched tool
// list after a full sync; after a targeted sync it is nil and Tool names the
// entry to patch with the current master settings.
type SyncCompleted struct {
	Tool    string
	History []models.SyncHistoryEntry
	Tools   []models.Tool
	Message string
}

type ConfigSaved struct {
	Master  models.MasterConfig
	Message string
}

type ImportCompleted struct {
	Master  models.MasterConfig
	Message string
}

type DraftEdited struct {
	Draft string
}

// ActionFailed ends an action of Kind with a user-visible error.
type ActionFailed struct {
	Kind    Status
	Message string
}

// MessageDismissed clears the message slot.
type MessageDismissed struct{}

func (ActionStarted) isAction()    {}
func (Bootstrapped) isAction()     {}
func (RescanCompleted) isAction()  {}
func (SyncCompleted) isAction()    {}
func (ConfigSaved) isAction()      {}
func (ImportCompleted) isAction()  {}
func (DraftEdited) isAction()      {}
func (ActionFailed) isAction()     {}
func (MessageDismissed) isAction() {}
