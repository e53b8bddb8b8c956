package reports

import (
	"bytes"
	"testing"

	"github.com/arjunvnair/campus-event-backend/internal/fieldschema"
)

func sampleReport() *Report {
	return &Report{
		EventName: "Tech Fest",
		Columns: []fieldschema.FieldDescriptor{
			{ID: "name", Label: "Name"},
			{ID: "custom_Team", Label: "Team", Custom: true},
		},
		Rows: [][]string{
			{"Asha", "Alpha"},
			{"Ravi", "Beta"},
		},
	}
}

func TestExportExcel(t *testing.T) {
	data, filename, mime, err := NewExporter().Export(FormatExcel, sampleReport())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filename != "Tech-Fest-participants.xlsx" {
		t.Errorf("filename = %q", filename)
	}
	if mime != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("mime = %q", mime)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("excel output is not a zip archive")
	}
}

func TestExportPDF(t *testing.T) {
	data, filename, mime, err := NewExporter().Export(FormatPDF, sampleReport())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filename != "Tech-Fest-participants.pdf" {
		t.Errorf("filename = %q", filename)
	}
	if mime != "application/pdf" {
		t.Errorf("mime = %q", mime)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("pdf output missing %PDF header")
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	if _, _, _, err := NewExporter().Export("csv", sampleReport()); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExportFilename(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Tech Fest", "Tech-Fest-participants.pdf"},
		{"  spaced  ", "spaced-participants.pdf"},
		{"a/b\\c", "a-b-c-participants.pdf"},
		{"", "event-participants.pdf"},
	}
	for _, tc := range cases {
		if got := exportFilename(tc.name, "pdf"); got != tc.want {
			t.Errorf("exportFilename(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
