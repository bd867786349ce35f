package console

import (
	"github.com/brizzai/mcp-sync-console/internal/models"
)

// Status names the kind of action in flight.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusBootstrapping Status = "bootstrapping"
	StatusRescanning    Status = "rescanning"
	StatusSyncing       Status = "syncing"
	StatusSaving        Status = "saving"
	StatusImporting     Status = "importing"
)

// State is everything the console shows. It is a value: Reduce returns a new
// State and never modifies slices or maps it was given, so snapshots can be
// shared freely as long as callers treat them as read-only.
type State struct {
	Tools       []models.Tool
	Master      *models.MasterConfig
	Draft       string
	History     []models.SyncHistoryEntry
	Recommended []models.RecommendedServer

	// Error and Success share one message slot; setting one clears the other.
	Error   string
	Success string

	// InFlight lists the kinds of the running actions in start order.
	InFlight []Status

	Bootstrapped bool

	// Derived from Master and Tools on every transition.
	Diffs        map[string]*models.ConfigDiff
	InstalledIDs map[string]struct{}
}

// Status is the most recently started action still running, or idle.
func (s State) Status() Status {
	if len(s.InFlight) == 0 {
		return StatusIdle
	}
	return s.InFlight[len(s.InFlight)-1]
}

// Busy reports whether any action is running. Controls are disabled while
// busy.
func (s State) Busy() bool {
	return len(s.InFlight) > 0
}

// Installed reports whether the master configuration has a server with id.
func (s State) Installed(id string) bool {
	_, ok := s.InstalledIDs[id]
	return ok
}

// DiffFor returns the diff of the named tool, nil when it matches master.
func (s State) DiffFor(tool string) *models.ConfigDiff {
	return s.Diffs[tool]
}

// DraftDirty reports whether the draft differs from the stored master.
func (s State) DraftDirty() bool {
	if s.Master == nil {
		return s.Draft != ""
	}
	return s.Draft != prettySettings(s.Master.Settings)
}

// Tool returns the named tool.
func (s State) Tool(name string) (models.Tool, bool) {
	for _, t := range s.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return models.Tool{}, false
}
