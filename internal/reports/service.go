package reports

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arjunvnair/campus-event-backend/internal/event"
	"github.com/arjunvnair/campus-event-backend/internal/fieldschema"
	"github.com/arjunvnair/campus-event-backend/internal/registration"
	"github.com/arjunvnair/campus-event-backend/middleware"
)

// Service builds participant reports and coordinates the exporter.
type Service interface {
	ExportParticipants(eventID uint, format, fieldsPrinted string, sc middleware.SessionContext) ([]byte, string, string, error)
}

type service struct {
	eventSvc *event.Service
	regRepo  *registration.Repository
	exporter Exporter
}

func NewService(eventSvc *event.Service, regRepo *registration.Repository, exporter Exporter) Service {
	return &service{
		eventSvc: eventSvc,
		regRepo:  regRepo,
		exporter: exporter,
	}
}

func (s *service) ExportParticipants(eventID uint, format, fieldsPrinted string, sc middleware.SessionContext) ([]byte, string, string, error) {
	e, err := s.eventSvc.GetEventByID(eventID)
	if err != nil {
		return nil, "", "", err
	}
	if e.CreatedBy != sc.UserID {
		return nil, "", "", event.ErrNotOwner
	}

	participants, err := s.regRepo.ListByEvent(eventID)
	if err != nil {
		return nil, "", "", err
	}

	report, err := buildReport(e, participants, fieldsPrinted)
	if err != nil {
		return nil, "", "", err
	}

	return s.exporter.Export(format, report)
}

// buildReport resolves the selected columns and formats one row per
// participant. Column discovery unions the declared schema with keys
// observed in stored values, so drifted data still exports. Both
// failure guards run here, before any bytes are generated.
func buildReport(e *event.Event, participants []registration.Participant, fieldsPrinted string) (*Report, error) {
	if len(participants) == 0 {
		return nil, ErrExportGenerationFailed
	}

	values := make([]fieldschema.ValueMap, 0, len(participants))
	for i := range participants {
		values = append(values, participants[i].Values())
	}

	descriptors := fieldschema.DiscoverFields(e.Schema(), values)
	selection := fieldschema.NewSelection(descriptors)
	if strings.TrimSpace(fieldsPrinted) != "" {
		selection.SetAll(fieldschema.ParseFieldsPrinted(fieldsPrinted))
	}

	fieldIDs, err := selection.BuildExportRequest()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]fieldschema.FieldDescriptor, len(descriptors))
	for _, d := range descriptors {
		byID[d.ID] = d
	}

	columns := make([]fieldschema.FieldDescriptor, 0, len(fieldIDs))
	for _, id := range fieldIDs {
		columns = append(columns, byID[id])
	}

	rows := make([][]string, 0, len(participants))
	for i := range participants {
		row := make([]string, 0, len(fieldIDs))
		for _, id := range fieldIDs {
			row = append(row, resolveCell(&participants[i], id))
		}
		rows = append(rows, row)
	}

	return &Report{
		EventName: e.Name,
		Columns:   columns,
		Rows:      rows,
	}, nil
}

func resolveCell(p *registration.Participant, fieldID string) string {
	switch fieldID {
	case "name":
		return p.Name
	case "enrollment_number":
		return p.EnrollmentNumber
	case "amity_email":
		return p.AmityEmail
	case "phone_number":
		return p.PhoneNumber
	case "branch":
		return p.Branch
	case "year":
		return p.Year
	case "registered_at":
		return p.RegisteredAt.Format("2006-01-02 15:04")
	case "attendance":
		if p.Attendance {
			return "Present"
		}
		return "Absent"
	}

	if name, ok := fieldschema.CustomName(fieldID); ok {
		return formatValue(p.Values()[name])
	}
	return ""
}

func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
