package fieldschema

import (
	"strconv"
	"strings"
)

// InputKind names the widget a field type maps to on a registration form.
type InputKind string

const (
	InputText     InputKind = "text"
	InputNumber   InputKind = "number"
	InputCheckbox InputKind = "checkbox"
	InputSelect   InputKind = "select"
)

// Binding pairs a field with the input widget it renders as.
type Binding struct {
	Field Field
	Input InputKind
}

// Bindings dispatches each field to its input widget, preserving schema
// order.
func Bindings(fields []Field) []Binding {
	out := make([]Binding, 0, len(fields))
	for _, f := range fields {
		b := Binding{Field: f}
		switch f.Type {
		case TypeNumber:
			b.Input = InputNumber
		case TypeBoolean:
			b.Input = InputCheckbox
		case TypeSelect:
			b.Input = InputSelect
		default:
			b.Input = InputText
		}
		out = append(out, b)
	}
	return out
}

// Validate checks a submitted value map against a field set and returns one
// error per failing field, keyed by field name. An empty result means the
// submission may proceed.
//
// Required semantics: absence or an empty string fails, but a BOOLEAN
// explicitly set to false is a valid value. NUMBER values are validated
// strictly, malformed numeric input is rejected here rather than passed
// through to the database. SELECT values must be one of the declared options.
func Validate(fields []Field, values ValueMap) map[string]error {
	errs := make(map[string]error)
	for _, f := range fields {
		val, present := values[f.Name]

		// A BOOLEAN explicitly set to false is present and valid; only
		// absence and empty strings count as unset.
		if !present || isEmpty(val) {
			if f.Required {
				errs[f.Name] = ErrMissingRequiredField
			}
			continue
		}

		switch f.Type {
		case TypeNumber:
			if _, err := ParseNumber(val); err != nil {
				errs[f.Name] = ErrInvalidNumber
			}
		case TypeBoolean:
			if _, ok := val.(bool); !ok {
				errs[f.Name] = ErrInvalidBoolean
			}
		case TypeSelect:
			s, ok := val.(string)
			if !ok || !containsOption(f.Options, s) {
				errs[f.Name] = ErrInvalidOption
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseNumber accepts the value shapes a NUMBER field can arrive as: a JSON
// number (float64 after decoding), a native int, or a numeric string.
func ParseNumber(val interface{}) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, ErrInvalidNumber
		}
		return n, nil
	default:
		return 0, ErrInvalidNumber
	}
}

func isEmpty(val interface{}) bool {
	if val == nil {
		return true
	}
	if s, ok := val.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func containsOption(opts []string, s string) bool {
	for _, o := range opts {
		if o == s {
			return true
		}
	}
	return false
}
