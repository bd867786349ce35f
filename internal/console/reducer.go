package console

import (
	"github.com/brizzai/mcp-sync-console/internal/models"
)

// Reduce applies a to s. It is pure: s is never modified and every slice or
// map that changes is rebuilt.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case ActionStarted:
		s.Error, s.Success = "", ""
		s.InFlight = appendStatus(s.InFlight, a.Kind)

	case Bootstrapped:
		master := a.Master
		s.Tools = a.Tools
		s.Master = &master
		s.Draft = prettySettings(master.Settings)
		s.History = a.History
		s.Recommended = a.Recommended
		s.Bootstrapped = true
		s.InFlight = removeStatus(s.InFlight, StatusBootstrapping)

	case RescanCompleted:
		s.Tools = a.Tools
		s.setSuccess(a.Message)
		s.InFlight = removeStatus(s.InFlight, StatusRescanning)

	case SyncCompleted:
		s.History = a.History
		if a.Tool == "" {
			s.Tools = a.Tools
		} else if s.Master != nil {
			s.Tools = patchTool(s.Tools, a.Tool, s.Master.Settings)
		}
		s.setSuccess(a.Message)
		s.InFlight = removeStatus(s.InFlight, StatusSyncing)

	case ConfigSaved:
		s.adoptMaster(a.Master)
		s.setSuccess(a.Message)
		s.InFlight = removeStatus(s.InFlight, StatusSaving)

	case ImportCompleted:
		s.adoptMaster(a.Master)
		s.setSuccess(a.Message)
		s.InFlight = removeStatus(s.InFlight, StatusImporting)

	case DraftEdited:
		s.Draft = a.Draft

	case ActionFailed:
		s.Success = ""
		s.Error = a.Message
		s.InFlight = removeStatus(s.InFlight, a.Kind)

	case MessageDismissed:
		s.Error, s.Success = "", ""
	}

	return derive(s)
}

// derive recomputes the values that depend on Master and Tools.
func derive(s State) State {
	s.Diffs = DiffMap(s.Master, s.Tools)
	s.InstalledIDs = InstalledIDs(s.Master)
	return s
}

// adoptMaster replaces master and resets the draft to the stored value,
// discarding local edits.
func (s *State) adoptMaster(master models.MasterConfig) {
	s.Master = &master
	s.Draft = prettySettings(master.Settings)
}

func (s *State) setSuccess(msg string) {
	s.Error = ""
	s.Success = msg
}

func patchTool(tools []models.Tool, name string, settings models.Settings) []models.Tool {
	out := make([]models.Tool, len(tools))
	copy(out, tools)
	for i := range out {
		if out[i].Name == name {
			out[i].Settings = settings.Clone()
		}
	}
	return out
}

func appendStatus(list []Status, kind Status) []Status {
	out := make([]Status, len(list), len(list)+1)
	copy(out, list)
	return append(out, kind)
}

// removeStatus drops the earliest entry of kind.
func removeStatus(list []Status, kind Status) []Status {
	for i, k := range list {
		if k == kind {
			out := make([]Status, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}

func prettySettings(settings models.Settings) string {
	text, err := settings.Pretty()
	if err != nil {
		return "{}"
	}
	return text
}
