package fieldschema

import (
	"reflect"
	"testing"
)

func TestDiscoverFieldsUnion(t *testing.T) {
	schema := []Field{{Name: "T-Shirt Size", Type: TypeSelect, Options: []string{"S", "M", "L"}}}
	participants := []ValueMap{
		{"Dietary Pref": "Veg"},
		{"T-Shirt Size": "M"},
	}

	descs := DiscoverFields(schema, participants)

	if len(descs) != len(StandardFields)+2 {
		t.Fatalf("got %d descriptors, want %d", len(descs), len(StandardFields)+2)
	}
	for i, std := range StandardFields {
		if descs[i].ID != std.ID {
			t.Errorf("descriptor %d = %s, want standard field %s", i, descs[i].ID, std.ID)
		}
	}

	// Declared fields come before drifted participant keys.
	custom := descs[len(StandardFields):]
	if custom[0].ID != "custom_T-Shirt Size" || custom[0].Label != "T-Shirt Size" {
		t.Errorf("first custom descriptor = %+v", custom[0])
	}
	if custom[1].ID != "custom_Dietary Pref" || custom[1].Label != "Dietary Pref" {
		t.Errorf("second custom descriptor = %+v", custom[1])
	}
	for _, d := range custom {
		if !d.Custom {
			t.Errorf("descriptor %s not marked custom", d.ID)
		}
	}
}

// Drifted keys inside one participant come from a Go map, so discovery must
// impose its own order: the same inputs always yield the same column list.
func TestDiscoverFieldsDriftedKeysStableOrder(t *testing.T) {
	participants := []ValueMap{
		{"Echo": "e", "Alpha": "a", "Delta": "d", "Charlie": "c", "Beta": "b"},
	}

	first := DiscoverFields(nil, participants)
	custom := first[len(StandardFields):]
	wantIDs := []string{"custom_Alpha", "custom_Beta", "custom_Charlie", "custom_Delta", "custom_Echo"}
	for i, want := range wantIDs {
		if custom[i].ID != want {
			t.Fatalf("custom descriptor %d = %s, want %s", i, custom[i].ID, want)
		}
	}

	for run := 0; run < 50; run++ {
		if got := DiscoverFields(nil, participants); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced a different order: %v", run, got)
		}
	}
}

func TestDiscoverFieldsNoDuplicates(t *testing.T) {
	schema := []Field{{Name: "Team", Type: TypeString}}
	participants := []ValueMap{{"Team": "Alpha"}, {"Team": "Beta"}}

	descs := DiscoverFields(schema, participants)
	count := 0
	for _, d := range descs {
		if d.ID == "custom_Team" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("custom_Team appeared %d times, want 1", count)
	}
}

func TestBuildExportRequestOrdering(t *testing.T) {
	descs := DiscoverFields([]Field{{Name: "Team", Type: TypeString}}, nil)
	sel := NewSelection(descs)
	sel.SetAll([]string{"custom_Team", "name"}) // request order must not matter

	printed, err := sel.BuildExportRequest()
	if err != nil {
		t.Fatalf("BuildExportRequest: %v", err)
	}
	want := []string{"name", "custom_Team"}
	if !reflect.DeepEqual(printed, want) {
		t.Errorf("fields_printed = %v, want %v", printed, want)
	}
}

func TestBuildExportRequestEmpty(t *testing.T) {
	sel := NewSelection(DiscoverFields(nil, nil))
	sel.SetAll(nil)

	if _, err := sel.BuildExportRequest(); err != ErrNoFieldsSelected {
		t.Errorf("empty selection = %v, want ErrNoFieldsSelected", err)
	}
}

func TestToggle(t *testing.T) {
	sel := NewSelection(DiscoverFields(nil, nil))

	sel.Toggle("enrollment_number")
	if sel.Included("enrollment_number") {
		t.Error("toggle did not exclude the field")
	}
	if !sel.Included("name") {
		t.Error("toggle affected an unrelated field")
	}
	sel.Toggle("enrollment_number")
	if !sel.Included("enrollment_number") {
		t.Error("second toggle did not re-include the field")
	}

	// Unknown IDs are ignored rather than added.
	sel.Toggle("custom_Ghost")
	if sel.Included("custom_Ghost") {
		t.Error("toggle introduced an undiscovered field")
	}
}

func TestParseFieldsPrinted(t *testing.T) {
	got := ParseFieldsPrinted("name, custom_Team ,,attendance")
	want := []string{"name", "custom_Team", "attendance"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseFieldsPrinted = %v, want %v", got, want)
	}
}

func TestCustomName(t *testing.T) {
	if name, ok := CustomName("custom_Dietary Pref"); !ok || name != "Dietary Pref" {
		t.Errorf("CustomName(custom_Dietary Pref) = %q, %v", name, ok)
	}
	if name, ok := CustomName("branch"); ok || name != "branch" {
		t.Errorf("CustomName(branch) = %q, %v", name, ok)
	}
}
