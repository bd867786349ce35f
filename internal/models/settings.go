package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ServersKey is the settings key holding the server list.
const ServersKey = "servers"

// Settings is an opaque configuration object. Only the "servers" list and
// each server's "id" carry meaning to the console; everything else is kept
// verbatim and in order.
type Settings struct {
	Record
}

// ParseSettings parses text that must hold a JSON object.
func ParseSettings(text string) (Settings, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 {
		return Settings{}, errors.New("settings are empty")
	}
	if trimmed[0] != '{' {
		return Settings{}, errors.New("settings must be a JSON object")
	}
	var s Settings
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	return Settings{Record: s.Record.Clone()}
}

// Pretty renders the settings as two-space indented JSON. String escapes
// such as \u0026 are decoded, and '&', '<' and '>' are written as is.
func (s Settings) Pretty() (string, error) {
	raw, err := s.MarshalJSON()
	if err != nil {
		return "", err
	}
	text, err := CanonicalJSON(raw)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err = json.Indent(&buf, []byte(text), "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ServersJSON returns the canonical compact JSON text of the server list,
// so lists that decode to the same data compare equal even when escapes or
// number spellings differ. A missing key yields "" and an explicit null
// yields "null", so the two never compare equal.
func (s Settings) ServersJSON() string {
	raw, ok := s.Get(ServersKey)
	if !ok {
		return ""
	}
	if len(raw) == 0 {
		return "null"
	}
	text, err := CanonicalJSON(raw)
	if err != nil {
		return string(raw)
	}
	return text
}

// ServersRaw returns the server list exactly as stored, or nil when absent.
func (s Settings) ServersRaw() json.RawMessage {
	raw, ok := s.Get(ServersKey)
	if !ok {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}

// Servers decodes the server list. A missing or null list is empty.
func (s Settings) Servers() ([]Record, error) {
	raw, ok := s.Get(ServersKey)
	if !ok || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var servers []Record
	if err := json.Unmarshal(raw, &servers); err != nil {
		return nil, fmt.Errorf("servers must be a list of objects: %w", err)
	}
	return servers, nil
}

// ServerIDs returns the string ids of all servers, in list order. Entries
// without a string id are skipped, as is a server list that cannot be read.
func (s Settings) ServerIDs() []string {
	servers, err := s.Servers()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(servers))
	for _, server := range servers {
		if id, ok := server.GetString("id"); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// WithServerField returns a copy of s where the server with the given id has
// key set to value. The bool result reports whether the server was found.
func (s Settings) WithServerField(id, key string, value any) (Settings, bool, error) {
	servers, err := s.Servers()
	if err != nil {
		return s, false, err
	}

	found := false
	for i := range servers {
		if sid, ok := servers[i].GetString("id"); ok && sid == id {
			if err = servers[i].SetValue(key, value); err != nil {
				return s, false, err
			}
			found = true
		}
	}
	if !found {
		return s, false, nil
	}

	out := s.Clone()
	if err = out.SetValue(ServersKey, servers); err != nil {
		return s, false, err
	}
	return out, true, nil
}
