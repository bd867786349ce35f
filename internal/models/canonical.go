package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// encodeJSON marshals v compactly without HTML escaping, so '&', '<' and
// '>' stay as written.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// CanonicalJSON re-serializes a JSON value the way a parse and stringify
// round trip would, keeping object key order. Two values that decode to the
// same data produce the same text.
func CanonicalJSON(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var sb strings.Builder
	if err := writeCanonical(dec, &sb); err != nil {
		return "", err
	}
	if dec.More() {
		return "", fmt.Errorf("unexpected data after JSON value")
	}
	return sb.String(), nil
}

func writeCanonical(dec *json.Decoder, sb *strings.Builder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			sb.WriteByte('{')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					sb.WriteByte(',')
				}
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				key, _ := keyTok.(string)
				if err = writeString(sb, key); err != nil {
					return err
				}
				sb.WriteByte(':')
				if err = writeCanonical(dec, sb); err != nil {
					return err
				}
			}
			if _, err = dec.Token(); err != nil {
				return err
			}
			sb.WriteByte('}')
		case '[':
			sb.WriteByte('[')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					sb.WriteByte(',')
				}
				if err = writeCanonical(dec, sb); err != nil {
					return err
				}
			}
			if _, err = dec.Token(); err != nil {
				return err
			}
			sb.WriteByte(']')
		default:
			return fmt.Errorf("unexpected delimiter %s", v)
		}
	case string:
		return writeString(sb, v)
	case json.Number:
		f, err := v.Float64()
		if err != nil || math.IsInf(f, 0) {
			sb.WriteString(v.String())
			return nil
		}
		if f == 0 {
			f = 0
		}
		format := byte('f')
		if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
			format = 'e'
		}
		sb.WriteString(strconv.FormatFloat(f, format, -1, 64))
	case bool:
		sb.WriteString(strconv.FormatBool(v))
	case nil:
		sb.WriteString("null")
	}
	return nil
}

func writeString(sb *strings.Builder, s string) error {
	out, err := encodeJSON(s)
	if err != nil {
		return err
	}
	sb.Write(out)
	return nil
}
