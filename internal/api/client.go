// Package api is the typed client of the sync service REST API. Every
// method issues exactly one request and makes a single attempt.
package api

import (
	"context"
	"net/http"

	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/brizzai/mcp-sync-console/internal/requester"
)

var (
	RouteListTools         = requester.Route{Method: http.MethodGet, Path: "/api/tools"}
	RouteRescanTools       = requester.Route{Method: http.MethodPost, Path: "/api/tools/rescan"}
	RouteGetMasterConfig   = requester.Route{Method: http.MethodGet, Path: "/api/config/master"}
	RouteSaveMasterConfig  = requester.Route{Method: http.MethodPost, Path: "/api/config/master"}
	RouteListRecommended   = requester.Route{Method: http.MethodGet, Path: "/api/config/recommended"}
	RouteImportRecommended = requester.Route{Method: http.MethodPost, Path: "/api/config/master/import"}
	RouteSync              = requester.Route{Method: http.MethodPost, Path: "/api/sync"}
	RouteSyncHistory       = requester.Route{Method: http.MethodGet, Path: "/api/sync/history"}
)

// Routes lists every endpoint the client calls.
func Routes() []requester.Route {
	return []requester.Route{
		RouteListTools,
		RouteRescanTools,
		RouteGetMasterConfig,
		RouteSaveMasterConfig,
		RouteListRecommended,
		RouteImportRecommended,
		RouteSync,
		RouteSyncHistory,
	}
}

type Client struct {
	requester requester.Requester
}

func NewClient(r requester.Requester) *Client {
	return &Client{requester: r}
}

func (c *Client) FetchTools(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	if err := c.requester.Do(ctx, RouteListTools, nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// RescanTools asks the backend to re-detect tools and returns the full new set.
func (c *Client) RescanTools(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	if err := c.requester.Do(ctx, RouteRescanTools, nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

func (c *Client) FetchMasterConfig(ctx context.Context) (*models.MasterConfig, error) {
	var master models.MasterConfig
	if err := c.requester.Do(ctx, RouteGetMasterConfig, nil, &master); err != nil {
		return nil, err
	}
	return &master, nil
}

// UpdateMasterConfig replaces the master settings and returns what the
// backend stored.
func (c *Client) UpdateMasterConfig(ctx context.Context, settings models.Settings) (*models.MasterConfig, error) {
	var master models.MasterConfig
	in := models.UpdateMasterRequest{Settings: settings}
	if err := c.requester.Do(ctx, RouteSaveMasterConfig, in, &master); err != nil {
		return nil, err
	}
	return &master, nil
}

func (c *Client) FetchRecommendedServers(ctx context.Context) ([]models.RecommendedServer, error) {
	var servers []models.RecommendedServer
	if err := c.requester.Do(ctx, RouteListRecommended, nil, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// ImportRecommendedServer merges one preset into master on the backend. A nil
// enabled leaves the choice to the backend's preset default.
func (c *Client) ImportRecommendedServer(ctx context.Context, serverID string, enabled *bool) (*models.MasterConfig, error) {
	var master models.MasterConfig
	in := models.ImportRecommendedRequest{ServerID: serverID, Enabled: enabled}
	if err := c.requester.Do(ctx, RouteImportRecommended, in, &master); err != nil {
		return nil, err
	}
	return &master, nil
}

// SyncTools syncs the named tool, or every tool when tool is empty.
func (c *Client) SyncTools(ctx context.Context, tool string) ([]models.SyncSummary, error) {
	in := models.SyncRequest{}
	if tool != "" {
		in.Tool = &tool
	}
	var summaries []models.SyncSummary
	if err := c.requester.Do(ctx, RouteSync, in, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (c *Client) FetchSyncHistory(ctx context.Context) ([]models.SyncHistoryEntry, error) {
	var history []models.SyncHistoryEntry
	if err := c.requester.Do(ctx, RouteSyncHistory, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}
