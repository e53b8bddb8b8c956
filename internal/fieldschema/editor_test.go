package fieldschema

import (
	"reflect"
	"testing"
)

func TestEditorAddCommit(t *testing.T) {
	e := NewEditor(nil)

	e.StartAdd()
	if !e.Editing() {
		t.Fatal("StartAdd did not enter editing state")
	}
	if e.Buffer().Type != TypeString {
		t.Errorf("new buffer type = %s, want STRING", e.Buffer().Type)
	}

	e.Buffer().Name = "Tier"
	e.Buffer().Type = TypeSelect
	e.Buffer().Required = true
	e.Buffer().Options = "Gold, Silver, Bronze"

	if err := e.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if e.Editing() {
		t.Error("Commit left the editor in editing state")
	}

	want := []Field{{Name: "Tier", Type: TypeSelect, Required: true, Options: []string{"Gold", "Silver", "Bronze"}}}
	if !reflect.DeepEqual(e.Fields(), want) {
		t.Errorf("Fields() = %+v, want %+v", e.Fields(), want)
	}
}

func TestEditorDuplicateNameLeavesSetUnchanged(t *testing.T) {
	e := NewEditor([]Field{{Name: "Team Name", Type: TypeString}})

	e.StartAdd()
	e.Buffer().Name = "Team Name"
	err := e.Commit()
	if err != ErrDuplicateFieldName {
		t.Fatalf("Commit = %v, want ErrDuplicateFieldName", err)
	}
	if !e.Editing() {
		t.Error("failed Commit should stay in editing state")
	}
	if len(e.Fields()) != 1 {
		t.Errorf("set mutated on failed commit: %+v", e.Fields())
	}
}

func TestEditorEditInPlace(t *testing.T) {
	e := NewEditor([]Field{
		{Name: "Age", Type: TypeNumber},
		{Name: "Branch", Type: TypeString},
	})

	if err := e.StartEdit(0); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	if e.Buffer().Name != "Age" {
		t.Errorf("buffer name = %q, want Age", e.Buffer().Name)
	}

	// Keeping its own name is not a duplicate.
	e.Buffer().Required = true
	if err := e.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !e.Fields()[0].Required {
		t.Error("in-place edit did not replace the entry")
	}
	if len(e.Fields()) != 2 {
		t.Errorf("edit appended instead of replacing: %+v", e.Fields())
	}
}

func TestEditorSelectNeedsOptions(t *testing.T) {
	e := NewEditor(nil)
	e.StartAdd()
	e.Buffer().Name = "Tier"
	e.Buffer().Type = TypeSelect
	e.Buffer().Options = " , ,"

	if err := e.Commit(); err != ErrNoSelectOptions {
		t.Errorf("Commit = %v, want ErrNoSelectOptions", err)
	}
}

func TestEditorRemove(t *testing.T) {
	e := NewEditor([]Field{
		{Name: "A", Type: TypeString},
		{Name: "B", Type: TypeString},
		{Name: "C", Type: TypeString},
	})

	// Removing the entry being edited resets the buffer.
	if err := e.StartEdit(1); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	if err := e.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if e.Editing() {
		t.Error("removing the edited entry should reset to idle")
	}

	// Removing before the edited entry shifts the edit target.
	if err := e.StartEdit(1); err != nil { // now "C"
		t.Fatalf("StartEdit: %v", err)
	}
	if err := e.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	e.Buffer().Name = "C2"
	if err := e.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	want := []Field{{Name: "C2", Type: TypeString}}
	if !reflect.DeepEqual(e.Fields(), want) {
		t.Errorf("Fields() = %+v, want %+v", e.Fields(), want)
	}

	if err := e.Remove(5); err != ErrIndexOutOfRange {
		t.Errorf("Remove(5) = %v, want ErrIndexOutOfRange", err)
	}
}

func TestEditorCancel(t *testing.T) {
	e := NewEditor([]Field{{Name: "A", Type: TypeString}})
	if err := e.StartEdit(0); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	e.Buffer().Name = "changed"
	e.Cancel()

	if e.Editing() {
		t.Error("Cancel should return to idle")
	}
	if e.Fields()[0].Name != "A" {
		t.Errorf("Cancel mutated the set: %+v", e.Fields())
	}
}

func TestEditorCommitWithoutEditing(t *testing.T) {
	e := NewEditor(nil)
	if err := e.Commit(); err != ErrNotEditing {
		t.Errorf("Commit while idle = %v, want ErrNotEditing", err)
	}
}
