package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Number is a tolerant JSON numeric value. It accepts a JSON number or a
// numeric string, and keeps hold of raw input it could not parse instead of
// failing the unmarshal of the surrounding document. Callers check Valid
// before using Value.
type Number struct {
	Value float64
	Valid bool
	raw   json.RawMessage
}

// Num builds a valid Number. Shorthand for tests and payment appends.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// Present reports whether the field carried any value at all, parseable or
// not. A zero Number (field absent from the document) is not present;
// defaults apply only to absent fields, never to stored junk or a stored
// zero.
func (n Number) Present() bool {
	return n.Valid || len(n.raw) > 0
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	n.raw = append(json.RawMessage(nil), data...)
	n.Valid = false

	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	s := string(data)
	if len(data) >= 2 && data[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return nil
		}
		s = unquoted
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n.Value = v
	n.Valid = true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.Valid {
		return json.Marshal(n.Value)
	}
	// Preserve whatever was stored so a save does not rewrite history
	// entries the calculator merely skips.
	if len(n.raw) > 0 {
		return n.raw, nil
	}
	return []byte("null"), nil
}
