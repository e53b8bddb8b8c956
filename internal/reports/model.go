package reports

import (
	"errors"

	"github.com/arjunvnair/campus-event-backend/internal/fieldschema"
)

var (
	// ErrExportGenerationFailed is returned before any bytes are
	// produced when an event has no participants to export.
	ErrExportGenerationFailed = errors.New("no participants to export")
)

const (
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Report is the fully resolved table handed to the exporter: ordered
// columns (standard fields first, then customs) and one row of
// formatted strings per participant.
type Report struct {
	EventName string
	Columns   []fieldschema.FieldDescriptor
	Rows      [][]string
}
