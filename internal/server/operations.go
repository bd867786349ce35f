package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/brizzai/mcp-sync-console/internal/server/tool"
)

// Backend is the part of the API client the bridge exposes.
type Backend interface {
	FetchTools(ctx context.Context) ([]models.Tool, error)
	RescanTools(ctx context.Context) ([]models.Tool, error)
	FetchMasterConfig(ctx context.Context) (*models.MasterConfig, error)
	UpdateMasterConfig(ctx context.Context, settings models.Settings) (*models.MasterConfig, error)
	FetchRecommendedServers(ctx context.Context) ([]models.RecommendedServer, error)
	ImportRecommendedServer(ctx context.Context, serverID string, enabled *bool) (*models.MasterConfig, error)
	SyncTools(ctx context.Context, tool string) ([]models.SyncSummary, error)
	FetchSyncHistory(ctx context.Context) ([]models.SyncHistoryEntry, error)
}

// executors maps contract operation ids to the backend calls serving them.
func executors(b Backend) map[string]tool.Executor {
	return map[string]tool.Executor{
		"list_tools": func(ctx context.Context, _ tool.Arguments) (any, error) {
			return b.FetchTools(ctx)
		},
		"rescan_tools": func(ctx context.Context, _ tool.Arguments) (any, error) {
			return b.RescanTools(ctx)
		},
		"get_master_config": func(ctx context.Context, _ tool.Arguments) (any, error) {
			return b.FetchMasterConfig(ctx)
		},
		"update_master_config": func(ctx context.Context, args tool.Arguments) (any, error) {
			settings, err := settingsArgument(args, "settings")
			if err != nil {
				return nil, err
			}
			return b.UpdateMasterConfig(ctx, settings)
		},
		"list_recommended_servers": func(ctx context.Context, _ tool.Arguments) (any, error) {
			return b.FetchRecommendedServers(ctx)
		},
		"import_recommended_server": func(ctx context.Context, args tool.Arguments) (any, error) {
			id, err := args.RequireString("server_id")
			if err != nil {
				return nil, err
			}
			enabled, err := args.Bool("enabled")
			if err != nil {
				return nil, err
			}
			return b.ImportRecommendedServer(ctx, id, enabled)
		},
		"sync_tools": func(ctx context.Context, args tool.Arguments) (any, error) {
			name, _, err := args.String("tool")
			if err != nil {
				return nil, err
			}
			return b.SyncTools(ctx, name)
		},
		"sync_history": func(ctx context.Context, _ tool.Arguments) (any, error) {
			return b.FetchSyncHistory(ctx)
		},
	}
}

// settingsArgument accepts the settings either as a JSON object or as JSON
// text. Only the text form keeps the caller's key order.
func settingsArgument(args tool.Arguments, name string) (models.Settings, error) {
	var text string
	switch v := args[name].(type) {
	case nil:
		return models.Settings{}, &tool.ArgumentError{Name: name, Reason: "is required"}
	case string:
		text = v
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return models.Settings{}, &tool.ArgumentError{Name: name, Reason: err.Error()}
		}
		text = string(data)
	default:
		return models.Settings{}, &tool.ArgumentError{Name: name, Reason: fmt.Sprintf("expected an object, got %T", v)}
	}

	settings, err := models.ParseSettings(text)
	if err != nil {
		return models.Settings{}, &tool.ArgumentError{Name: name, Reason: err.Error()}
	}
	return settings, nil
}
