package entity

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is a request field rendered verbatim into prompt text. It accepts any JSON
// scalar or array so clients may send `"progress": 35` or `"progress": "35"` alike.
// Absent and null values render as the empty string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '[':
		var items []Text
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = string(it)
		}
		*t = Text(strings.Join(parts, ","))
	default:
		// numbers, booleans and objects keep their literal JSON form
		*t = Text(data)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Empty reports whether the field was absent, null or the empty string. Optional
// prompt fragments are skipped only then; whitespace still counts as a value.
func (t Text) Empty() bool { return t == "" }

// Blank reports whether the field holds nothing but whitespace.
func (t Text) Blank() bool { return strings.TrimSpace(string(t)) == "" }
