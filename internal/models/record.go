package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one key/value pair of a Record. Value holds the raw JSON text.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Record is a JSON object that keeps its keys in document order and never
// interprets its values. It is the shape of opaque settings payloads.
type Record struct {
	fields []Field
}

// NewRecord builds a Record from fields. Later duplicates overwrite earlier
// ones in place.
func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Len returns the number of keys.
func (r Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the fields in document order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Keys returns the keys in document order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the raw value stored under key.
func (r Record) Get(key string) (json.RawMessage, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// GetString returns the value under key when it is a JSON string.
func (r Record) GetString(key string) (string, bool) {
	raw, ok := r.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Set stores value under key, replacing an existing entry without moving it.
func (r *Record) Set(key string, value json.RawMessage) {
	value = append(json.RawMessage(nil), value...)
	for i := range r.fields {
		if r.fields[i].Key == key {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// SetValue marshals v and stores it under key.
func (r *Record) SetValue(key string, v any) error {
	raw, err := encodeJSON(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	r.Set(key, raw)
	return nil
}

// Delete removes key and reports whether it was present.
func (r *Record) Delete(key string) bool {
	for i := range r.fields {
		if r.fields[i].Key == key {
			r.fields = append(r.fields[:i:i], r.fields[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := Record{fields: make([]Field, len(r.fields))}
	for i, f := range r.fields {
		out.fields[i] = Field{Key: f.Key, Value: append(json.RawMessage(nil), f.Value...)}
	}
	return out
}

// MarshalJSON writes the fields in document order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(f.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(f.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping key order. null leaves an
// empty record.
func (r *Record) UnmarshalJSON(data []byte) error {
	r.fields = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object, got %s", describeToken(tok))
	}

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %s", describeToken(tok))
		}
		var value json.RawMessage
		if err = dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode %q: %w", key, err)
		}
		r.Set(key, value)
	}

	if _, err = dec.Token(); err != nil {
		return err
	}
	return nil
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "an array"
		}
		return fmt.Sprintf("%q", v.String())
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return "a number"
	}
}
