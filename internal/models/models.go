package models

import (
	"encoding/json"
	"time"
)

// Tool is an external program whose configuration file the service manages.
type Tool struct {
	Name       string   `json:"name" yaml:"name"`
	Version    string   `json:"version,omitempty" yaml:"version,omitempty"`
	ConfigPath string   `json:"config_path" yaml:"config_path"`
	Settings   Settings `json:"settings" yaml:"settings"`
}

// MasterConfig is the canonical configuration all tools converge to.
type MasterConfig struct {
	Settings  Settings   `json:"settings" yaml:"settings"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// RecommendedServer is a preset server definition offered for import.
type RecommendedServer struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Category       string `json:"category,omitempty" yaml:"category,omitempty"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	Endpoint       string `json:"endpoint" yaml:"endpoint"`
	APIKeyRequired bool   `json:"api_key_required" yaml:"api_key_required"`
	DefaultEnabled bool   `json:"default_enabled" yaml:"default_enabled"`
	Homepage       string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
}

type SyncStatus string

const (
	SyncStatusUpdated SyncStatus = "updated"
	SyncStatusSkipped SyncStatus = "skipped"
	SyncStatusFailed  SyncStatus = "failed"
)

// SyncOutcome is how a SyncStatus is presented.
type SyncOutcome int

const (
	OutcomeFailed SyncOutcome = iota
	OutcomeUpdated
	OutcomeKept
)

// Outcome maps the status to one of three outcomes. Only the two known
// success spellings count as success; anything else is a failure.
func (s SyncStatus) Outcome() SyncOutcome {
	switch s {
	case "updated", "Updated":
		return OutcomeUpdated
	case "skipped", "Skipped":
		return OutcomeKept
	default:
		return OutcomeFailed
	}
}

// SyncSummary is the result of syncing one tool.
type SyncSummary struct {
	Tool     string     `json:"tool" yaml:"tool"`
	Status   SyncStatus `json:"status" yaml:"status"`
	Message  string     `json:"message" yaml:"message"`
	SyncedAt time.Time  `json:"synced_at" yaml:"synced_at"`
}

// SyncHistoryEntry is a past sync attempt, as returned by the history endpoint.
type SyncHistoryEntry = SyncSummary

// ConfigDiff holds both server lists of a tool that differs from master.
type ConfigDiff struct {
	Master json.RawMessage `json:"master"`
	Tool   json.RawMessage `json:"tool"`
}

type UpdateMasterRequest struct {
	Settings Settings `json:"settings"`
}

type ImportRecommendedRequest struct {
	ServerID string `json:"server_id"`
	Enabled  *bool  `json:"enabled,omitempty"`
}

// SyncRequest selects one tool, or every tool when Tool is nil.
type SyncRequest struct {
	Tool *string `json:"tool"`
}

// ErrorResponse is the error body returned by the backend.
type ErrorResponse struct {
	Error string `json:"error"`
}
