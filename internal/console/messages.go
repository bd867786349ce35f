package console

import (
	"fmt"
	"strings"

	"github.com/brizzai/mcp-sync-console/internal/models"
)

// Catalog holds every user-visible string of the console in one language.
type Catalog struct {
	Locale string

	BootstrapFailed string
	RescanDone      string // takes the tool count
	RescanFailed    string
	SyncDone        string
	SyncFailed      string
	SaveDone        string
	SaveFailed      string
	DraftInvalid    string
	ImportDone      string
	ImportFailed    string

	LabelUpdated string
	LabelKept    string
	LabelFailed  string

	EmptyTools       string
	EmptyHistory     string
	EmptyRecommended string

	Identical  string
	ShowDiff   string
	Installed  string
	Import     string
	APIKeyHint string
	NoMaster   string

	Title               string
	Subtitle            string
	SectionMaster       string
	SectionRecommended  string
	RecommendedSubtitle string
	SectionTools        string
	SectionHistory      string

	ColTool   string
	ColPath   string
	ColDiff   string
	ColAction string

	// Used by the scripted commands.
	Differs     string
	ColStatus   string
	ColMessage  string
	ColSyncedAt string

	Save    string
	Sync    string
	SyncAll string
	Rescan  string

	DefaultOn   string
	DefaultOff  string
	Endpoint    string
	APIKey      string
	Required    string
	NotRequired string
	Homepage    string

	UpdatedAt   string
	Unsaved     string
	DiffMaster  string
	DiffTool    string
	DiffChanges string

	ServerCount  string
	CopyDone     string
	CopyFailed   string
	CopyMaster   string
	CopyToolDiff string

	StatusText map[Status]string
}

var catalogs = map[string]Catalog{
	"en": {
		Locale:          "en",
		BootstrapFailed: "Failed to load the initial data. Check that the backend server is running.",
		RescanDone:      "Reloaded %d tool configurations.",
		RescanFailed:    "Failed to rescan tools.",
		SyncDone:        "Sync completed.",
		SyncFailed:      "An error occurred while syncing.",
		SaveDone:        "Saved the master configuration.",
		SaveFailed:      "Failed to save the master configuration. Check the JSON format.",
		DraftInvalid:    "The master configuration is not valid JSON.",
		ImportDone:      "Added the recommended server to the master configuration.",
		ImportFailed:    "Failed to add the recommended server.",

		LabelUpdated: "Updated",
		LabelKept:    "Kept",
		LabelFailed:  "Failed",

		EmptyTools:       "No tools detected. Run a tool rescan.",
		EmptyHistory:     "No sync history yet.",
		EmptyRecommended: "No recommended servers available.",

		Identical:  "Identical",
		ShowDiff:   "Show diff",
		Installed:  "Already added",
		Import:     "Add to master",
		APIKeyHint: "Enter the API key in the master configuration after adding.",
		NoMaster:   "No master configuration loaded.",

		Title:               "MCP Sync Service",
		Subtitle:            "Keeps the MCP configuration of AI CLI tools in sync.",
		SectionMaster:       "Master configuration",
		SectionRecommended:  "Recommended MCP servers",
		RecommendedSubtitle: "Quickly add the main servers suggested by the documentation.",
		SectionTools:        "Installed tools",
		SectionHistory:      "Recent sync history",

		ColTool:   "Tool",
		ColPath:   "Config file",
		ColDiff:   "Diff",
		ColAction: "Action",

		Differs:     "Differs from master",
		ColStatus:   "Status",
		ColMessage:  "Message",
		ColSyncedAt: "Synced at",

		Save:    "Save",
		Sync:    "Sync",
		SyncAll: "Sync all",
		Rescan:  "Rescan tools",

		DefaultOn:   "Enabled by default",
		DefaultOff:  "Disabled by default",
		Endpoint:    "Endpoint",
		APIKey:      "API key",
		Required:    "Required",
		NotRequired: "Not required",
		Homepage:    "Homepage",

		UpdatedAt:   "Last updated",
		Unsaved:     "Unsaved changes",
		DiffMaster:  "Master",
		DiffTool:    "Tool",
		DiffChanges: "Changes",

		ServerCount:  "%d servers: %s",
		CopyDone:     "Copied %s to the clipboard",
		CopyFailed:   "Could not copy %s: %v",
		CopyMaster:   "master configuration",
		CopyToolDiff: "%s diff",

		StatusText: map[Status]string{
			StatusIdle:          "Ready",
			StatusBootstrapping: "Loading",
			StatusRescanning:    "Rescanning tools",
			StatusSyncing:       "Syncing",
			StatusSaving:        "Saving",
			StatusImporting:     "Importing",
		},
	},
	"ko": {
		Locale:          "ko",
		BootstrapFailed: "초기 데이터를 불러오는데 실패했습니다. 백엔드 서버가 실행 중인지 확인해주세요.",
		RescanDone:      "%d개의 도구 구성을 다시 불러왔습니다.",
		RescanFailed:    "도구 재검색에 실패했습니다.",
		SyncDone:        "동기화가 완료되었습니다.",
		SyncFailed:      "동기화 중 오류가 발생했습니다.",
		SaveDone:        "마스터 구성을 저장했습니다.",
		SaveFailed:      "마스터 구성 저장에 실패했습니다. JSON 형식을 확인해주세요.",
		DraftInvalid:    "마스터 구성이 올바른 JSON 형식이 아닙니다.",
		ImportDone:      "추천 서버를 마스터 구성에 추가했습니다.",
		ImportFailed:    "추천 서버를 추가하는 데 실패했습니다.",

		LabelUpdated: "갱신",
		LabelKept:    "유지",
		LabelFailed:  "실패",

		EmptyTools:       "검색된 도구가 없습니다. 도구 재검색을 실행해 주세요.",
		EmptyHistory:     "동기화 내역이 없습니다.",
		EmptyRecommended: "추천 서버 데이터가 없습니다.",

		Identical:  "동일",
		ShowDiff:   "차이 보기",
		Installed:  "이미 추가됨",
		Import:     "마스터에 추가",
		APIKeyHint: "추가 후 마스터 구성에서 API 키를 입력해야 합니다.",
		NoMaster:   "마스터 구성을 불러오지 못했습니다.",

		Title:               "MCP Sync Service",
		Subtitle:            "AI CLI 도구의 MCP 구성을 자동으로 동기화합니다.",
		SectionMaster:       "마스터 구성",
		SectionRecommended:  "추천 MCP 서버",
		RecommendedSubtitle: "문서에서 제안하는 주요 서버를 빠르게 추가할 수 있습니다.",
		SectionTools:        "설치된 도구",
		SectionHistory:      "최근 동기화 내역",

		ColTool:   "도구명",
		ColPath:   "구성 파일",
		ColDiff:   "차이",
		ColAction: "동작",

		Differs:     "마스터와 다름",
		ColStatus:   "상태",
		ColMessage:  "메시지",
		ColSyncedAt: "동기화 시각",

		Save:    "저장하기",
		Sync:    "동기화",
		SyncAll: "전체 동기화",
		Rescan:  "도구 재검색",

		DefaultOn:   "기본 활성화",
		DefaultOff:  "기본 비활성화",
		Endpoint:    "엔드포인트",
		APIKey:      "API 키",
		Required:    "필요",
		NotRequired: "불필요",
		Homepage:    "홈페이지",

		UpdatedAt:   "마지막 수정",
		Unsaved:     "저장되지 않은 변경 사항",
		DiffMaster:  "마스터",
		DiffTool:    "도구",
		DiffChanges: "변경 사항",

		ServerCount:  "서버 %d개: %s",
		CopyDone:     "%s을(를) 클립보드에 복사했습니다",
		CopyFailed:   "%s을(를) 복사하지 못했습니다: %v",
		CopyMaster:   "마스터 구성",
		CopyToolDiff: "%s 차이",

		StatusText: map[Status]string{
			StatusIdle:          "준비",
			StatusBootstrapping: "불러오는 중",
			StatusRescanning:    "도구 재검색 중",
			StatusSyncing:       "동기화 중",
			StatusSaving:        "저장 중",
			StatusImporting:     "추가 중",
		},
	},
}

// NewCatalog returns the catalog for locale, English when it is unknown.
func NewCatalog(locale string) Catalog {
	if c, ok := catalogs[locale]; ok {
		return c
	}
	return catalogs["en"]
}

// Locales lists the supported catalog locales.
func Locales() []string {
	return []string{"en", "ko"}
}

// StatusLabel maps a sync status to one of the three display labels.
// Anything that is not a recognized success is shown as failed.
func (c Catalog) StatusLabel(status models.SyncStatus) string {
	switch status.Outcome() {
	case models.OutcomeUpdated:
		return c.LabelUpdated
	case models.OutcomeKept:
		return c.LabelKept
	default:
		return c.LabelFailed
	}
}

func (c Catalog) Rescanned(n int) string {
	return fmt.Sprintf(c.RescanDone, n)
}

// ServerSummary is the one-line description of the master server list.
func (c Catalog) ServerSummary(ids []string) string {
	return fmt.Sprintf(c.ServerCount, len(ids), strings.Join(ids, ", "))
}

func (c Catalog) Copied(what string) string {
	return fmt.Sprintf(c.CopyDone, what)
}

func (c Catalog) CopyError(what string, err error) string {
	return fmt.Sprintf(c.CopyFailed, what, err)
}

func (c Catalog) Activity(s Status) string {
	if text, ok := c.StatusText[s]; ok {
		return text
	}
	return string(s)
}
