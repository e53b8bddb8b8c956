package registration

import (
	"reflect"
	"strings"
	"testing"
)

// Participants are soft-deleted, so the composite unique indexes must be
// partial over live rows. A plain unique index would leave the soft-deleted
// row in place and block the same user (or guest email) from ever
// registering for the event again.
func TestParticipantUniqueIndexesScopedToLiveRows(t *testing.T) {
	typ := reflect.TypeOf(Participant{})

	tests := []struct {
		field string
		index string
	}{
		{"EventID", "idx_event_user"},
		{"EventID", "idx_event_email"},
		{"UserID", "idx_event_user"},
		{"AmityEmail", "idx_event_email"},
	}

	for _, tt := range tests {
		f, ok := typ.FieldByName(tt.field)
		if !ok {
			t.Fatalf("Participant has no field %s", tt.field)
		}
		tag := f.Tag.Get("gorm")

		var decl string
		for _, part := range strings.Split(tag, ";") {
			if strings.Contains(part, tt.index) {
				decl = part
			}
		}
		if decl == "" {
			t.Fatalf("%s: gorm tag %q does not declare index %s", tt.field, tag, tt.index)
		}
		if !strings.Contains(decl, "unique") {
			t.Errorf("%s: index %s is not unique: %q", tt.field, tt.index, decl)
		}
		if !strings.Contains(decl, "where:deleted_at IS NULL") {
			t.Errorf("%s: index %s is not scoped to live rows: %q", tt.field, tt.index, decl)
		}
	}
}
