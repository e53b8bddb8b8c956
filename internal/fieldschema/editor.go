package fieldschema

import "strings"

const (
	editingIdle = -2
	editingNew  = -1
)

// Buffer holds the in-progress definition of a single field while it is
// being added or edited. Options are kept as the raw comma-separated string
// the organizer types; they are parsed only on commit.
type Buffer struct {
	Name     string
	Type     Type
	Required bool
	Options  string
}

// Editor manages an event's working copy of its field set. It moves between
// Idle and Editing: StartAdd/StartEdit enter Editing, Commit/Cancel return to
// Idle. The set is only mutated by a successful Commit or by Remove; the
// caller serializes the result into the event payload, the editor never
// touches the network.
type Editor struct {
	fields  []Field
	buffer  Buffer
	editing int
}

// NewEditor starts an editor over a copy of the given field set.
func NewEditor(fields []Field) *Editor {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return &Editor{fields: cp, editing: editingIdle}
}

// Fields returns the current field set.
func (e *Editor) Fields() []Field { return e.fields }

// Editing reports whether a field is currently being added or edited.
func (e *Editor) Editing() bool { return e.editing != editingIdle }

// Buffer returns a pointer to the active input buffer so callers can bind
// form inputs to it.
func (e *Editor) Buffer() *Buffer { return &e.buffer }

// StartAdd begins adding a new field with a blank STRING buffer.
func (e *Editor) StartAdd() {
	e.buffer = Buffer{Type: TypeString}
	e.editing = editingNew
}

// StartEdit loads the field at index into the buffer for in-place editing.
func (e *Editor) StartEdit(index int) error {
	if index < 0 || index >= len(e.fields) {
		return ErrIndexOutOfRange
	}
	f := e.fields[index]
	e.buffer = Buffer{
		Name:     f.Name,
		Type:     f.Type,
		Required: f.Required,
		Options:  JoinOptions(f.Options),
	}
	e.editing = index
	return nil
}

// Commit validates the buffer and applies it: append when adding, replace in
// place when editing. On validation failure the editor stays in Editing and
// the set is untouched.
func (e *Editor) Commit() error {
	if e.editing == editingIdle {
		return ErrNotEditing
	}

	editIndex := e.editing
	if editIndex == editingNew {
		editIndex = -1
	}
	if err := ValidateName(e.buffer.Name, e.fields, editIndex); err != nil {
		return err
	}

	f := Field{
		Name:     strings.TrimSpace(e.buffer.Name),
		Type:     e.buffer.Type,
		Required: e.buffer.Required,
	}
	switch f.Type {
	case TypeString, TypeNumber, TypeBoolean, TypeSelect:
	default:
		f.Type = TypeString
	}
	if f.Type == TypeSelect {
		f.Options = BuildOptions(e.buffer.Options)
		if len(f.Options) == 0 {
			return ErrNoSelectOptions
		}
	}

	if e.editing == editingNew {
		e.fields = append(e.fields, f)
	} else {
		e.fields[e.editing] = f
	}
	e.reset()
	return nil
}

// Remove deletes the field at index. If that field was being edited, the
// buffer is discarded as well.
func (e *Editor) Remove(index int) error {
	if index < 0 || index >= len(e.fields) {
		return ErrIndexOutOfRange
	}
	e.fields = append(e.fields[:index], e.fields[index+1:]...)
	if e.editing == index {
		e.reset()
	} else if e.editing > index && e.editing != editingIdle {
		// Editing target shifted left by the removal.
		e.editing--
	}
	return nil
}

// Cancel discards the buffer without touching the set.
func (e *Editor) Cancel() { e.reset() }

func (e *Editor) reset() {
	e.buffer = Buffer{}
	e.editing = editingIdle
}
