package fieldschema

import (
	"reflect"
	"testing"
)

func TestNormalizeRoundTrip(t *testing.T) {
	fields := []Field{
		{Name: "Team Name", Type: TypeString, Required: true},
		{Name: "Team Size", Type: TypeNumber},
		{Name: "Tier", Type: TypeSelect, Required: true, Options: []string{"Gold", "Silver", "Bronze"}},
		{Name: "Subscribed", Type: TypeBoolean},
	}

	data, err := Marshal(fields)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got := Normalize(data)
	if !reflect.DeepEqual(got, fields) {
		t.Errorf("Normalize(Marshal(fields)) = %+v, want %+v", got, fields)
	}

	// And once more through the string representation.
	got = Normalize(string(data))
	if !reflect.DeepEqual(got, fields) {
		t.Errorf("Normalize(string form) = %+v, want %+v", got, fields)
	}
}

func TestNormalizeLegacyCommaList(t *testing.T) {
	got := Normalize("a, b, c")
	want := []Field{
		{Name: "a", Type: TypeString},
		{Name: "b", Type: TypeString},
		{Name: "c", Type: TypeString},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize(%q) = %+v, want %+v", "a, b, c", got, want)
	}
	for _, f := range got {
		if f.Required {
			t.Errorf("legacy field %q decoded as required", f.Name)
		}
	}
}

func TestNormalizeVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want []Field
	}{
		{
			name: "nil input",
			raw:  nil,
			want: nil,
		},
		{
			name: "empty string",
			raw:  "",
			want: nil,
		},
		{
			name: "unknown type defaults to STRING",
			raw:  `[{"name":"X","type":"DATE"}]`,
			want: []Field{{Name: "X", Type: TypeString}},
		},
		{
			name: "missing type defaults to STRING",
			raw:  `[{"name":"X"}]`,
			want: []Field{{Name: "X", Type: TypeString}},
		},
		{
			name: "options cleared on non-SELECT",
			raw:  `[{"name":"X","type":"NUMBER","options":["a"]}]`,
			want: []Field{{Name: "X", Type: TypeNumber}},
		},
		{
			name: "unparseable JSON falls back to comma split",
			raw:  `{not json`,
			want: []Field{{Name: "{not json", Type: TypeString}},
		},
		{
			name: "JSON string wrapping an array",
			raw:  `"[{\"name\":\"Y\",\"type\":\"BOOLEAN\"}]"`,
			want: []Field{{Name: "Y", Type: TypeBoolean}},
		},
		{
			name: "decoded interface slice",
			raw: []interface{}{
				map[string]interface{}{"name": "Z", "type": "SELECT", "required": true, "options": []interface{}{"a", "b"}},
			},
			want: []Field{{Name: "Z", Type: TypeSelect, Required: true, Options: []string{"a", "b"}}},
		},
		{
			name: "blank names dropped",
			raw:  `[{"name":"  "},{"name":"ok"}]`,
			want: []Field{{Name: "ok", Type: TypeString}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%v) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	existing := []Field{
		{Name: "Team Name", Type: TypeString},
		{Name: "Tier", Type: TypeSelect, Options: []string{"Gold"}},
	}

	tests := []struct {
		name         string
		candidate    string
		editingIndex int
		wantErr      error
	}{
		{"new unique name", "Roll No", -1, nil},
		{"duplicate on add", "Team Name", -1, ErrDuplicateFieldName},
		{"duplicate with surrounding spaces", "  Team Name ", -1, ErrDuplicateFieldName},
		{"same name while editing itself", "Team Name", 0, nil},
		{"duplicate of another entry while editing", "Tier", 0, ErrDuplicateFieldName},
		{"empty", "", -1, ErrEmptyFieldName},
		{"whitespace only", "   ", -1, ErrEmptyFieldName},
		{"case sensitive, no match", "team name", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateName(tt.candidate, existing, tt.editingIndex); err != tt.wantErr {
				t.Errorf("ValidateName(%q, _, %d) = %v, want %v", tt.candidate, tt.editingIndex, err, tt.wantErr)
			}
		})
	}
}

func TestBuildOptions(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Gold, Silver, Bronze", []string{"Gold", "Silver", "Bronze"}},
		{"a,,b,  ,c", []string{"a", "b", "c"}},
		{"", nil},
		{"  ", nil},
		{"solo", []string{"solo"}},
		{"dup, dup", []string{"dup", "dup"}}, // duplicates preserved
	}
	for _, tt := range tests {
		if got := BuildOptions(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("BuildOptions(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestMarshalNeverLegacy(t *testing.T) {
	fields := Normalize("a, b")
	data, err := Marshal(fields)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if data[0] != '[' {
		t.Errorf("Marshal produced non-array output %s", data)
	}
	if !reflect.DeepEqual(Normalize(data), fields) {
		t.Errorf("upgraded legacy set did not survive a round trip")
	}
}
