package fieldschema

import (
	"sort"
	"strings"
)

// CustomPrefix marks a custom field identifier in an export field list.
const CustomPrefix = "custom_"

// FieldDescriptor is one selectable column in a participant report.
type FieldDescriptor struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Custom bool   `json:"custom"`
}

// StandardFields is the fixed, ordered set of built-in participant columns.
// Export output always lists these first, in this order.
var StandardFields = []FieldDescriptor{
	{ID: "name", Label: "Name"},
	{ID: "enrollment_number", Label: "Enrollment Number"},
	{ID: "amity_email", Label: "Email"},
	{ID: "phone_number", Label: "Phone Number"},
	{ID: "branch", Label: "Branch"},
	{ID: "year", Label: "Year"},
	{ID: "registered_at", Label: "Registered At"},
	{ID: "attendance", Label: "Attendance"},
}

// DiscoverFields builds the selectable column list for an event: the
// standard set first, then one descriptor per distinct custom field name
// from the union of the event's declared schema and any keys observed in
// participants' stored values. The participant-side union guards against
// schema drift, a value recorded under a since-deleted field still exports.
func DiscoverFields(schema []Field, participantValues []ValueMap) []FieldDescriptor {
	descs := make([]FieldDescriptor, 0, len(StandardFields)+len(schema))
	descs = append(descs, StandardFields...)

	seen := make(map[string]bool, len(schema))
	for _, f := range schema {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		descs = append(descs, FieldDescriptor{
			ID:     CustomPrefix + f.Name,
			Label:  f.Name,
			Custom: true,
		})
	}
	// Undeclared keys come out of Go maps in random order; sort them so
	// repeated exports of the same event keep a stable column order.
	var drifted []string
	for _, values := range participantValues {
		for name := range values {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			drifted = append(drifted, name)
		}
	}
	sort.Strings(drifted)
	for _, name := range drifted {
		descs = append(descs, FieldDescriptor{
			ID:     CustomPrefix + name,
			Label:  name,
			Custom: true,
		})
	}
	return descs
}

// Selection tracks which discovered fields a report should include. It is
// built once per export dialog, toggled, consumed by BuildExportRequest, and
// discarded.
type Selection struct {
	order   []FieldDescriptor
	include map[string]bool
}

// NewSelection starts a selection over the discovered descriptors with every
// field included.
func NewSelection(descs []FieldDescriptor) *Selection {
	s := &Selection{
		order:   descs,
		include: make(map[string]bool, len(descs)),
	}
	for _, d := range descs {
		s.include[d.ID] = true
	}
	return s
}

// Toggle flips the include flag for one field, leaving the rest untouched.
func (s *Selection) Toggle(fieldID string) {
	if _, ok := s.include[fieldID]; ok {
		s.include[fieldID] = !s.include[fieldID]
	}
}

// Set forces the include flag for one field.
func (s *Selection) Set(fieldID string, on bool) {
	if _, ok := s.include[fieldID]; ok {
		s.include[fieldID] = on
	}
}

// SetAll replaces the selection with exactly the given field IDs; unknown
// IDs are ignored. Used when the caller supplies a fields_printed list.
func (s *Selection) SetAll(fieldIDs []string) {
	for id := range s.include {
		s.include[id] = false
	}
	for _, id := range fieldIDs {
		if _, ok := s.include[id]; ok {
			s.include[id] = true
		}
	}
}

// Included reports one field's current flag.
func (s *Selection) Included(fieldID string) bool { return s.include[fieldID] }

// Descriptors returns the selection's fields in discovery order.
func (s *Selection) Descriptors() []FieldDescriptor { return s.order }

// BuildExportRequest produces the ordered fields_printed list: included
// fields only, standard fields first in their fixed order, custom fields in
// discovery order. An empty result blocks the export.
func (s *Selection) BuildExportRequest() ([]string, error) {
	var printed []string
	for _, d := range s.order {
		if s.include[d.ID] {
			printed = append(printed, d.ID)
		}
	}
	if len(printed) == 0 {
		return nil, ErrNoFieldsSelected
	}
	return printed, nil
}

// ParseFieldsPrinted splits a comma-joined fields_printed parameter into
// identifiers, dropping empty tokens.
func ParseFieldsPrinted(raw string) []string {
	var ids []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			ids = append(ids, tok)
		}
	}
	return ids
}

// CustomName strips the custom_ prefix from a field identifier, returning
// the underlying field name and whether the identifier was custom.
func CustomName(fieldID string) (string, bool) {
	if strings.HasPrefix(fieldID, CustomPrefix) {
		return strings.TrimPrefix(fieldID, CustomPrefix), true
	}
	return fieldID, false
}
