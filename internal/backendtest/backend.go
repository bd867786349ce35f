// Package backendtest is an in-memory implementation of the sync service
// REST API for tests. It keeps tools, the master configuration, recommended
// presets and sync history, and can be told to fail any route.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/models"
	"github.com/brizzai/mcp-sync-console/internal/requester"
	"github.com/brizzai/mcp-sync-console/internal/utils"
)

// HistoryLimit is how many history entries the history endpoint returns.
const HistoryLimit = 25

type failure struct {
	status int
	body   string
}

// Backend is a fake sync service.
type Backend struct {
	mu          sync.Mutex
	tools       []models.Tool
	scanned     []models.Tool
	master      models.MasterConfig
	recommended []models.RecommendedServer
	history     []models.SyncSummary
	failures    map[string]failure
	calls       map[string]int
	bodies      map[string][]json.RawMessage
	hold        map[string]chan struct{}
	now         func() time.Time
}

// New returns an empty backend. Its clock starts at a fixed instant and
// advances one second per read.
func New() *Backend {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	b := &Backend{
		failures: map[string]failure{},
		calls:    map[string]int{},
		bodies:   map[string][]json.RawMessage{},
		hold:     map[string]chan struct{}{},
	}
	b.now = func() time.Time {
		tick++
		return start.Add(time.Duration(tick) * time.Second)
	}
	b.master.Settings = mustSettings(`{"servers":[]}`)
	return b
}

// Start serves the backend on a local httptest server closed at test cleanup.
func (b *Backend) Start(t interface{ Cleanup(func()) }) *httptest.Server {
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func key(route requester.Route) string {
	return route.Method + " " + route.Path
}

// SetTools replaces the detected tools.
func (b *Backend) SetTools(tools ...models.Tool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tools = cloneTools(tools)
}

// SetScanResult sets what the next rescans detect.
func (b *Backend) SetScanResult(tools ...models.Tool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scanned = cloneTools(tools)
}

// SetMaster replaces the master settings.
func (b *Backend) SetMaster(settings models.Settings) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.master.Settings = settings.Clone()
	at := b.now()
	b.master.UpdatedAt = &at
}

// SetRecommended replaces the recommended presets.
func (b *Backend) SetRecommended(servers ...models.RecommendedServer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recommended = append([]models.RecommendedServer(nil), servers...)
}

// AddHistory appends past sync attempts.
func (b *Backend) AddHistory(entries ...models.SyncSummary) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = append(b.history, entries...)
}

// Fail makes route answer with status and {"error": message}.
func (b *Backend) Fail(route requester.Route, status int, message string) {
	body, _ := json.Marshal(models.ErrorResponse{Error: message})
	b.FailRaw(route, status, string(body))
}

// FailRaw makes route answer with status and an arbitrary body.
func (b *Backend) FailRaw(route requester.Route, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[key(route)] = failure{status: status, body: body}
}

// Recover clears an injected failure.
func (b *Backend) Recover(route requester.Route) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, key(route))
}

// Hold blocks requests to route until the returned release func is called.
func (b *Backend) Hold(route requester.Route) (release func()) {
	ch := make(chan struct{})
	b.mu.Lock()
	b.hold[key(route)] = ch
	b.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.hold, key(route))
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Calls returns how many requests route has received.
func (b *Backend) Calls(route requester.Route) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key(route)]
}

// TotalCalls returns the number of requests received on any route.
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

// Bodies returns the request bodies route has received, in order.
func (b *Backend) Bodies(route requester.Route) []json.RawMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]json.RawMessage(nil), b.bodies[key(route)]...)
}

// Tools returns the backend's current tools.
func (b *Backend) Tools() []models.Tool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneTools(b.tools)
}

// Master returns the backend's current master configuration.
func (b *Backend) Master() models.MasterConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.master
	m.Settings = m.Settings.Clone()
	return m
}

// Handler serves the REST API.
func (b *Backend) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tools", b.wrap(b.listTools))
	mux.HandleFunc("POST /api/tools/rescan", b.wrap(b.rescanTools))
	mux.HandleFunc("GET /api/config/master", b.wrap(b.getMaster))
	mux.HandleFunc("POST /api/config/master", b.wrap(b.updateMaster))
	mux.HandleFunc("GET /api/config/recommended", b.wrap(b.listRecommended))
	mux.HandleFunc("POST /api/config/master/import", b.wrap(b.importRecommended))
	mux.HandleFunc("POST /api/sync", b.wrap(b.sync))
	mux.HandleFunc("GET /api/sync/history", b.wrap(b.syncHistory))
	return mux
}

// wrap records the call, honours holds and injected failures, then runs h
// under the backend lock.
func (b *Backend) wrap(h func(w http.ResponseWriter, body []byte)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		if r.Body != nil && r.ContentLength != 0 {
			if err := utils.DecodeJSON(r, &raw); err != nil {
				utils.WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		k := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.calls[k]++
		if raw != nil {
			b.bodies[k] = append(b.bodies[k], raw)
		}
		ch := b.hold[k]
		b.mu.Unlock()

		if ch != nil {
			select {
			case <-ch:
			case <-r.Context().Done():
				return
			}
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		if f, ok := b.failures[k]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		h(w, raw)
	}
}

func (b *Backend) listTools(w http.ResponseWriter, _ []byte) {
	utils.WriteJSON(w, http.StatusOK, nonNilTools(b.tools))
}

func (b *Backend) rescanTools(w http.ResponseWriter, _ []byte) {
	if b.scanned != nil {
		b.tools = cloneTools(b.scanned)
	}
	utils.WriteJSON(w, http.StatusOK, nonNilTools(b.tools))
}

func (b *Backend) getMaster(w http.ResponseWriter, _ []byte) {
	utils.WriteJSON(w, http.StatusOK, b.master)
}

func (b *Backend) updateMaster(w http.ResponseWriter, body []byte) {
	var req models.UpdateMasterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, fmt.Sprintf("serialization error: %v", err))
		return
	}
	b.master.Settings = req.Settings
	at := b.now()
	b.master.UpdatedAt = &at
	utils.WriteJSON(w, http.StatusOK, b.master)
}

func (b *Backend) listRecommended(w http.ResponseWriter, _ []byte) {
	out := b.recommended
	if out == nil {
		out = []models.RecommendedServer{}
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (b *Backend) importRecommended(w http.ResponseWriter, body []byte) {
	var req models.ImportRecommendedRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, fmt.Sprintf("serialization error: %v", err))
		return
	}

	var preset *models.RecommendedServer
	for i := range b.recommended {
		if b.recommended[i].ID == req.ServerID {
			preset = &b.recommended[i]
			break
		}
	}
	if preset == nil {
		utils.WriteError(w, http.StatusNotFound, fmt.Sprintf("recommended server '%s' not found", req.ServerID))
		return
	}

	enabled := preset.DefaultEnabled
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	settings, err := mergePreset(b.master.Settings, *preset, enabled)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	b.master.Settings = settings
	at := b.now()
	b.master.UpdatedAt = &at
	utils.WriteJSON(w, http.StatusOK, b.master)
}

// mergePreset updates the server with the preset's id in place, or appends a
// new server record.
func mergePreset(settings models.Settings, preset models.RecommendedServer, enabled bool) (models.Settings, error) {
	out, found, err := settings.WithServerField(preset.ID, "enabled", enabled)
	if err != nil {
		return settings, err
	}
	if found {
		out, _, err = out.WithServerField(preset.ID, "endpoint", preset.Endpoint)
		return out, err
	}

	servers, err := settings.Servers()
	if err != nil {
		return settings, err
	}
	var record models.Record
	for _, f := range []struct {
		key   string
		value any
	}{
		{"id", preset.ID},
		{"name", preset.Name},
		{"description", preset.Description},
		{"endpoint", preset.Endpoint},
		{"api_key", nil},
		{"enabled", enabled},
	} {
		if err := record.SetValue(f.key, f.value); err != nil {
			return settings, err
		}
	}
	servers = append(servers, record)

	out = settings.Clone()
	if err := out.SetValue(models.ServersKey, servers); err != nil {
		return settings, err
	}
	return out, nil
}

func (b *Backend) sync(w http.ResponseWriter, body []byte) {
	var req models.SyncRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			utils.WriteError(w, http.StatusBadRequest, fmt.Sprintf("serialization error: %v", err))
			return
		}
	}

	summaries := []models.SyncSummary{}
	for i := range b.tools {
		tool := &b.tools[i]
		if req.Tool != nil && tool.Name != *req.Tool {
			continue
		}
		summary := models.SyncSummary{Tool: tool.Name, SyncedAt: b.now()}
		if tool.Settings.ServersJSON() == b.master.Settings.ServersJSON() {
			summary.Status = models.SyncStatusSkipped
			summary.Message = "Already up-to-date"
		} else {
			tool.Settings = b.master.Settings.Clone()
			summary.Status = models.SyncStatusUpdated
			summary.Message = "Configuration updated"
		}
		summaries = append(summaries, summary)
		b.history = append(b.history, summary)
	}
	utils.WriteJSON(w, http.StatusOK, summaries)
}

func (b *Backend) syncHistory(w http.ResponseWriter, _ []byte) {
	entries := append([]models.SyncSummary(nil), b.history...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SyncedAt.After(entries[j].SyncedAt)
	})
	if len(entries) > HistoryLimit {
		entries = entries[:HistoryLimit]
	}
	if entries == nil {
		entries = []models.SyncSummary{}
	}
	utils.WriteJSON(w, http.StatusOK, entries)
}

func cloneTools(tools []models.Tool) []models.Tool {
	if tools == nil {
		return nil
	}
	out := make([]models.Tool, len(tools))
	for i, t := range tools {
		out[i] = t
		out[i].Settings = t.Settings.Clone()
	}
	return out
}

func nonNilTools(tools []models.Tool) []models.Tool {
	if tools == nil {
		return []models.Tool{}
	}
	return tools
}

func mustSettings(text string) models.Settings {
	s, err := models.ParseSettings(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Settings parses text into settings and panics on malformed input. It is
// meant for test fixtures.
func Settings(text string) models.Settings {
	return mustSettings(text)
}
