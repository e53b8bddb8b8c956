// Package fieldschema implements the dynamic custom-field subsystem used by
// events: the field definitions an organizer attaches to an event, the
// validation of participant-submitted values against those definitions, and
// the field selection that drives participant report exports.
package fieldschema

import (
	"encoding/json"
	"strings"
)

// Type is the closed set of custom field types.
type Type string

const (
	TypeString  Type = "STRING"
	TypeNumber  Type = "NUMBER"
	TypeBoolean Type = "BOOLEAN"
	TypeSelect  Type = "SELECT"
)

// Field describes one custom registration field on an event. Name doubles as
// the lookup key in submitted value maps and must be unique within a set.
type Field struct {
	Name     string   `json:"name"`
	Type     Type     `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// ValueMap holds participant-submitted values keyed by field name. Value
// shapes follow the field type: string for STRING/SELECT, number or numeric
// string for NUMBER, bool for BOOLEAN.
type ValueMap map[string]interface{}

// Normalize collapses every accepted wire representation of an event's
// custom_fields into a uniform []Field. It accepts a structured array
// (already decoded or as raw JSON bytes), a JSON-encoded string of the same,
// or the legacy comma-separated list of bare names. Unparseable JSON falls
// back to legacy comma splitting. Unknown or missing types default to STRING,
// and options are cleared on non-SELECT fields.
func Normalize(raw interface{}) []Field {
	switch v := raw.(type) {
	case nil:
		return nil
	case []Field:
		return sanitize(v)
	case string:
		return normalizeString(v)
	case []byte:
		return normalizeBytes(v)
	case json.RawMessage:
		return normalizeBytes(v)
	case []interface{}:
		return sanitize(decodeEntries(v))
	default:
		return nil
	}
}

func normalizeBytes(data []byte) []Field {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var fields []Field
	if err := json.Unmarshal(data, &fields); err == nil {
		return sanitize(fields)
	}

	// A JSON string may itself wrap either representation.
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return normalizeString(s)
	}

	return normalizeString(string(data))
}

func normalizeString(s string) []Field {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "\"") {
		var fields []Field
		if err := json.Unmarshal([]byte(s), &fields); err == nil {
			return sanitize(fields)
		}
		var inner string
		if err := json.Unmarshal([]byte(s), &inner); err == nil && inner != s {
			return normalizeString(inner)
		}
	}

	// Legacy representation: comma-separated bare names, all STRING, none
	// required. Never re-serialized in this form once edited.
	var fields []Field
	for _, name := range BuildOptions(s) {
		fields = append(fields, Field{Name: name, Type: TypeString})
	}
	return fields
}

func decodeEntries(entries []interface{}) []Field {
	var fields []Field
	for _, e := range entries {
		m, ok := e.(map[string]interface{})
		if !ok {
			if name, ok := e.(string); ok {
				fields = append(fields, Field{Name: name, Type: TypeString})
			}
			continue
		}
		f := Field{}
		if name, ok := m["name"].(string); ok {
			f.Name = name
		}
		if t, ok := m["type"].(string); ok {
			f.Type = Type(t)
		}
		if req, ok := m["required"].(bool); ok {
			f.Required = req
		}
		if opts, ok := m["options"].([]interface{}); ok {
			for _, o := range opts {
				if s, ok := o.(string); ok {
					f.Options = append(f.Options, s)
				}
			}
		}
		fields = append(fields, f)
	}
	return fields
}

func sanitize(fields []Field) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			continue
		}
		switch f.Type {
		case TypeString, TypeNumber, TypeBoolean, TypeSelect:
		default:
			f.Type = TypeString
		}
		if f.Type != TypeSelect {
			f.Options = nil
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Marshal serializes a field set into its canonical structured JSON form.
// The legacy comma-separated representation is never written back.
func Marshal(fields []Field) ([]byte, error) {
	if fields == nil {
		fields = []Field{}
	}
	return json.Marshal(fields)
}

// ValidateName checks a candidate field name against an existing set.
// editingIndex identifies the entry being updated in place (-1 for a new
// field) so that a field keeping its own name is not flagged as a duplicate.
func ValidateName(candidate string, existing []Field, editingIndex int) error {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ErrEmptyFieldName
	}
	for i, f := range existing {
		if i == editingIndex {
			continue
		}
		if f.Name == candidate {
			return ErrDuplicateFieldName
		}
	}
	return nil
}

// BuildOptions splits a comma-separated option string, trimming whitespace
// and discarding empty tokens. Order is preserved and duplicate labels are
// allowed (discouraged, but not rejected).
func BuildOptions(raw string) []string {
	var opts []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			opts = append(opts, tok)
		}
	}
	return opts
}

// JoinOptions is the inverse of BuildOptions, used when loading a SELECT
// field back into an editor buffer.
func JoinOptions(opts []string) string {
	return strings.Join(opts, ", ")
}
