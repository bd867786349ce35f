package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/brizzai/mcp-sync-console/internal/logger"
	"github.com/brizzai/mcp-sync-console/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Backend is the subset of the sync service API the console drives.
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

// DraftError is returned for a master draft that cannot be parsed. Such a
// draft is never sent to the backend.
type DraftError struct {
	Err error
}

func (e *DraftError) Error() string {
	return fmt.Sprintf("invalid master configuration draft: %v", e.Err)
}

func (e *DraftError) Unwrap() error {
	return e.Err
}

// Controller owns the console state. Operations may run concurrently; every
// transition goes through Reduce under the controller's lock.
type Controller struct {
	backend Backend
	catalog Catalog

	mu       sync.Mutex
	state    State
	observer func(State)
}

func NewController(backend Backend, catalog Catalog) *Controller {
	return &Controller{
		backend: backend,
		catalog: catalog,
		state:   derive(State{}),
	}
}

// Catalog returns the message catalog used for user-visible strings.
func (c *Controller) Catalog() Catalog {
	return c.catalog
}

// SetObserver registers fn to be called after every transition. fn runs
// outside the controller's lock and may call State.
func (c *Controller) SetObserver(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies a and notifies the observer.
func (c *Controller) Dispatch(a Action) {
	c.mu.Lock()
	c.state = Reduce(c.state, a)
	snapshot, observer := c.state, c.observer
	c.mu.Unlock()

	if observer != nil {
		observer(snapshot)
	}
}

// EditDraft replaces the master draft text.
func (c *Controller) EditDraft(text string) {
	c.Dispatch(DraftEdited{Draft: text})
}

// DismissMessage clears the current error or success message.
func (c *Controller) DismissMessage() {
	c.Dispatch(MessageDismissed{})
}

// Bootstrap fetches tools, master, history and recommended servers
// concurrently and commits them only if all four succeed.
func (c *Controller) Bootstrap(ctx context.Context) {
	c.Dispatch(ActionStarted{Kind: StatusBootstrapping})

	var (
		tools       []models.Tool
		master      *models.MasterConfig
		history     []models.SyncHistoryEntry
		recommended []models.RecommendedServer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tools, err = c.backend.FetchTools(gctx)
		return err
	})
	g.Go(func() (err error) {
		master, err = c.backend.FetchMasterConfig(gctx)
		return err
	})
	g.Go(func() (err error) {
		history, err = c.backend.FetchSyncHistory(gctx)
		return err
	})
	g.Go(func() (err error) {
		recommended, err = c.backend.FetchRecommendedServers(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		c.fail(StatusBootstrapping, err, c.catalog.BootstrapFailed)
		return
	}

	logger.Debug("Console bootstrapped",
		zap.Int("tools", len(tools)),
		zap.Int("history", len(history)),
		zap.Int("recommended", len(recommended)))

	c.Dispatch(Bootstrapped{
		Tools:       tools,
		Master:      *master,
		History:     history,
		Recommended: recommended,
	})
}

// Rescan asks the backend to detect tools again and replaces the tool list.
func (c *Controller) Rescan(ctx context.Context) {
	c.Dispatch(ActionStarted{Kind: StatusRescanning})

	tools, err := c.backend.RescanTools(ctx)
	if err != nil {
		c.fail(StatusRescanning, err, c.catalog.RescanFailed)
		return
	}

	c.Dispatch(RescanCompleted{Tools: tools, Message: c.catalog.Rescanned(len(tools))})
}

// Sync syncs one tool, or every tool when tool is empty, then refetches the
// history. A full sync also refetches the tools; a targeted sync assumes the
// tool now carries the master settings. The error is recorded in state and
// returned.
func (c *Controller) Sync(ctx context.Context, tool string) ([]models.SyncSummary, error) {
	c.Dispatch(ActionStarted{Kind: StatusSyncing})

	summaries, err := c.backend.SyncTools(ctx, tool)
	if err != nil {
		c.fail(StatusSyncing, err, c.catalog.SyncFailed)
		return nil, err
	}

	history, err := c.backend.FetchSyncHistory(ctx)
	if err != nil {
		c.fail(StatusSyncing, err, c.catalog.SyncFailed)
		return nil, err
	}

	var tools []models.Tool
	if tool == "" {
		tools, err = c.backend.FetchTools(ctx)
		if err != nil {
			c.fail(StatusSyncing, err, c.catalog.SyncFailed)
			return nil, err
		}
	}

	for _, s := range summaries {
		logger.Debug("Sync result",
			zap.String("tool", s.Tool),
			zap.String("status", string(s.Status)),
			zap.String("message", s.Message))
	}

	c.Dispatch(SyncCompleted{
		Tool:    tool,
		History: history,
		Tools:   tools,
		Message: c.catalog.SyncDone,
	})
	return summaries, nil
}

// SaveMasterConfig parses the draft and stores it as the master settings.
// A draft that does not parse fails locally without a request.
func (c *Controller) SaveMasterConfig(ctx context.Context) {
	draft := c.State().Draft
	c.Dispatch(ActionStarted{Kind: StatusSaving})

	settings, err := models.ParseSettings(draft)
	if err != nil {
		c.fail(StatusSaving, &DraftError{Err: err}, c.catalog.DraftInvalid)
		return
	}

	master, err := c.backend.UpdateMasterConfig(ctx, settings)
	if err != nil {
		c.fail(StatusSaving, err, c.catalog.SaveFailed)
		return
	}

	c.Dispatch(ConfigSaved{Master: *master, Message: c.catalog.SaveDone})
}

// ImportRecommended merges a recommended server into the master settings.
func (c *Controller) ImportRecommended(ctx context.Context, serverID string, enabled bool) {
	c.Dispatch(ActionStarted{Kind: StatusImporting})

	master, err := c.backend.ImportRecommendedServer(ctx, serverID, &enabled)
	if err != nil {
		c.fail(StatusImporting, err, c.catalog.ImportFailed)
		return
	}

	c.Dispatch(ImportCompleted{Master: *master, Message: c.catalog.ImportDone})
}

func (c *Controller) fail(kind Status, err error, message string) {
	logger.Error("Console action failed", zap.String("action", string(kind)), zap.Error(err))
	c.Dispatch(ActionFailed{Kind: kind, Message: message})
}
