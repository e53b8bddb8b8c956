package event

import (
	"errors"
	"testing"

	"github.com/arjunvnair/campus-event-backend/internal/fieldschema"
)

func TestParseEventTime(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantNil bool
		wantErr bool
	}{
		{"empty is optional", "", true, false},
		{"valid time", "17:30", false, false},
		{"midnight", "00:00", false, false},
		{"twelve hour clock rejected", "5:30 PM", false, true},
		{"garbage", "soon", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEventTime(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseEventTime(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (got == nil) != tt.wantNil {
				t.Errorf("parseEventTime(%q) = %v, wantNil %v", tt.raw, got, tt.wantNil)
			}
		})
	}
}

func TestNormalizeSchemaStructured(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"name": "Team Name", "type": "STRING", "required": true},
		map[string]interface{}{"name": "Team Size", "type": "NUMBER"},
	}

	out, err := normalizeSchema(raw)
	if err != nil {
		t.Fatalf("normalizeSchema() error = %v", err)
	}

	fields := fieldschema.Normalize([]byte(out))
	if len(fields) != 2 {
		t.Fatalf("stored schema has %d fields, want 2", len(fields))
	}
	if fields[0].Name != "Team Name" || !fields[0].Required {
		t.Errorf("first field = %+v, want required Team Name", fields[0])
	}
	if fields[1].Type != fieldschema.TypeNumber {
		t.Errorf("second field type = %s, want NUMBER", fields[1].Type)
	}
}

func TestNormalizeSchemaLegacyString(t *testing.T) {
	out, err := normalizeSchema("T-Shirt Size, Dietary Preference")
	if err != nil {
		t.Fatalf("normalizeSchema() error = %v", err)
	}

	fields := fieldschema.Normalize([]byte(out))
	if len(fields) != 2 {
		t.Fatalf("stored schema has %d fields, want 2", len(fields))
	}
	for _, f := range fields {
		if f.Type != fieldschema.TypeString || f.Required {
			t.Errorf("legacy field %q = %+v, want optional STRING", f.Name, f)
		}
	}
}

func TestNormalizeSchemaRejectsDuplicates(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"name": "Team", "type": "STRING"},
		map[string]interface{}{"name": "Team", "type": "NUMBER"},
	}

	if _, err := normalizeSchema(raw); !errors.Is(err, fieldschema.ErrDuplicateFieldName) {
		t.Fatalf("normalizeSchema() error = %v, want ErrDuplicateFieldName", err)
	}
}

func TestNormalizeSchemaRejectsEmptySelect(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"name": "Track", "type": "SELECT"},
	}

	if _, err := normalizeSchema(raw); !errors.Is(err, fieldschema.ErrNoSelectOptions) {
		t.Fatalf("normalizeSchema() error = %v, want ErrNoSelectOptions", err)
	}
}

func TestNormalizeSchemaNilLeavesEmpty(t *testing.T) {
	out, err := normalizeSchema(nil)
	if err != nil {
		t.Fatalf("normalizeSchema(nil) error = %v", err)
	}
	if fields := fieldschema.Normalize([]byte(out)); fields != nil {
		t.Errorf("normalizeSchema(nil) stored %+v, want empty", fields)
	}
}
