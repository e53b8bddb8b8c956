package reports

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/arjunvnair/campus-event-backend/internal/event"
	"github.com/arjunvnair/campus-event-backend/internal/fieldschema"
	"github.com/arjunvnair/campus-event-backend/internal/registration"
)

func testEvent(schema string) *event.Event {
	return &event.Event{
		ID:           1,
		Name:         "Tech Fest",
		CustomFields: datatypes.JSON(schema),
	}
}

func testParticipant(name, email, values string) registration.Participant {
	return registration.Participant{
		Name:              name,
		AmityEmail:        email,
		EnrollmentNumber:  "A123",
		RegisteredAt:      time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		CustomFieldValues: datatypes.JSON(values),
	}
}

func TestBuildReportZeroParticipants(t *testing.T) {
	_, err := buildReport(testEvent(`[]`), nil, "")
	if !errors.Is(err, ErrExportGenerationFailed) {
		t.Fatalf("expected ErrExportGenerationFailed, got %v", err)
	}
}

func TestBuildReportNoFieldsSelected(t *testing.T) {
	participants := []registration.Participant{
		testParticipant("Asha", "asha@s.amity.edu", `{}`),
	}

	_, err := buildReport(testEvent(`[]`), participants, "nonexistent_field")
	if !errors.Is(err, fieldschema.ErrNoFieldsSelected) {
		t.Fatalf("expected ErrNoFieldsSelected, got %v", err)
	}
}

func TestBuildReportColumnSelection(t *testing.T) {
	schema := `[{"name":"Team","type":"STRING","required":false}]`
	participants := []registration.Participant{
		testParticipant("Asha", "asha@s.amity.edu", `{"Team":"Alpha"}`),
	}

	report, err := buildReport(testEvent(schema), participants, "name,custom_Team")
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}

	ids := make([]string, 0, len(report.Columns))
	for _, c := range report.Columns {
		ids = append(ids, c.ID)
	}
	if want := []string{"name", "custom_Team"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("columns = %v, want %v", ids, want)
	}

	if want := []string{"Asha", "Alpha"}; !reflect.DeepEqual(report.Rows[0], want) {
		t.Fatalf("row = %v, want %v", report.Rows[0], want)
	}
}

func TestBuildReportStandardFirstOrdering(t *testing.T) {
	schema := `[{"name":"Team","type":"STRING","required":false}]`
	participants := []registration.Participant{
		testParticipant("Asha", "asha@s.amity.edu", `{"Team":"Alpha"}`),
	}

	// Request order is custom first; output order must stay
	// standard-fields-first discovery order.
	report, err := buildReport(testEvent(schema), participants, "custom_Team,name,enrollment_number")
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}

	ids := make([]string, 0, len(report.Columns))
	for _, c := range report.Columns {
		ids = append(ids, c.ID)
	}
	if want := []string{"name", "enrollment_number", "custom_Team"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("columns = %v, want %v", ids, want)
	}
}

func TestBuildReportDefaultsToAllFields(t *testing.T) {
	participants := []registration.Participant{
		testParticipant("Asha", "asha@s.amity.edu", `{}`),
	}

	report, err := buildReport(testEvent(`[]`), participants, "")
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}

	if len(report.Columns) != len(fieldschema.StandardFields) {
		t.Fatalf("got %d columns, want %d", len(report.Columns), len(fieldschema.StandardFields))
	}
}

func TestBuildReportDriftedParticipantKeys(t *testing.T) {
	// "Dietary Pref" is absent from the schema but present in stored
	// values; it must still be exportable.
	schema := `[{"name":"Team","type":"STRING","required":false}]`
	participants := []registration.Participant{
		testParticipant("Asha", "asha@s.amity.edu", `{"Team":"Alpha","Dietary Pref":"Veg"}`),
	}

	report, err := buildReport(testEvent(schema), participants, "name,custom_Dietary Pref")
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}

	if want := []string{"Asha", "Veg"}; !reflect.DeepEqual(report.Rows[0], want) {
		t.Fatalf("row = %v, want %v", report.Rows[0], want)
	}
}

func TestResolveCellFormats(t *testing.T) {
	p := testParticipant("Asha", "asha@s.amity.edu",
		`{"Members":3,"Remote":true,"Note":""}`)
	p.Attendance = true

	cases := []struct {
		fieldID string
		want    string
	}{
		{"name", "Asha"},
		{"enrollment_number", "A123"},
		{"amity_email", "asha@s.amity.edu"},
		{"attendance", "Present"},
		{"registered_at", "2026-03-14 10:30"},
		{"custom_Members", "3"},
		{"custom_Remote", "Yes"},
		{"custom_Note", ""},
		{"custom_Missing", ""},
	}

	for _, tc := range cases {
		if got := resolveCell(&p, tc.fieldID); got != tc.want {
			t.Errorf("resolveCell(%q) = %q, want %q", tc.fieldID, got, tc.want)
		}
	}
}
