package console

import (
	"github.com/brizzai/mcp-sync-console/internal/models"
)

// Diff compares the compact JSON text of both server lists. It returns nil
// when they are identical and both lists verbatim otherwise. Reordering the
// same servers counts as a difference.
func Diff(master, tool models.Settings) *models.ConfigDiff {
	if master.ServersJSON() == tool.ServersJSON() {
		return nil
	}
	return &models.ConfigDiff{
		Master: master.ServersRaw(),
		Tool:   tool.ServersRaw(),
	}
}

// DiffMap computes the diff of every tool against master. With no master
// there is nothing to compare and the map is empty.
func DiffMap(master *models.MasterConfig, tools []models.Tool) map[string]*models.ConfigDiff {
	diffs := make(map[string]*models.ConfigDiff, len(tools))
	if master == nil {
		return diffs
	}
	for _, tool := range tools {
		diffs[tool.Name] = Diff(master.Settings, tool.Settings)
	}
	return diffs
}

// InstalledIDs is the set of server ids present in master.
func InstalledIDs(master *models.MasterConfig) map[string]struct{} {
	ids := map[string]struct{}{}
	if master == nil {
		return ids
	}
	for _, id := range master.Settings.ServerIDs() {
		ids[id] = struct{}{}
	}
	return ids
}
