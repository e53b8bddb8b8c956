package event

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/arjunvnair/campus-event-backend/internal/fieldschema"
	"github.com/arjunvnair/campus-event-backend/middleware"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotOwner      = errors.New("only the event creator can do this")
)

// Service wraps business logic for campus events
type Service struct {
	Repo *Repository
}

func NewService(r *Repository) *Service {
	return &Service{Repo: r}
}

// ===========================
// Create Event
func (s *Service) CreateEvent(req *CreateEventRequest, sc middleware.SessionContext) (*Event, error) {
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, errors.New("invalid event_date format. Use YYYY-MM-DD")
	}

	eventTimePtr, err := parseEventTime(req.EventTime)
	if err != nil {
		return nil, err
	}

	schemaJSON, err := normalizeSchema(req.CustomFields)
	if err != nil {
		return nil, err
	}

	isPublic := false
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	event := &Event{
		Name:            req.Name,
		Description:     req.Description,
		Venue:           req.Venue,
		EventDate:       eventDate,
		EventTime:       eventTimePtr,
		MaxParticipants: req.MaxParticipants,
		IsPublic:        isPublic,
		CreatedBy:       sc.UserID,
		CustomFields:    schemaJSON,
	}

	if err := s.Repo.CreateEvent(event); err != nil {
		return nil, err
	}

	return event, nil
}

// ===========================
// Get Event by ID
func (s *Service) GetEventByID(id uint) (*Event, error) {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

// ===========================
// List Events
func (s *Service) ListEvents(limit, offset int, search string) ([]Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListEvents(limit, offset, search)
}

func (s *Service) ListMyEvents(sc middleware.SessionContext, limit, offset int) ([]Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListEventsByCreator(sc.UserID, limit, offset)
}

// ===========================
// Update Event
func (s *Service) UpdateEvent(req *UpdateEventRequest, sc middleware.SessionContext) (*Event, error) {
	existing, err := s.GetEventByID(req.ID)
	if err != nil {
		return nil, err
	}

	if existing.CreatedBy != sc.UserID {
		return nil, ErrNotOwner
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, errors.New("invalid event_date format. Use YYYY-MM-DD")
	}

	eventTimePtr, err := parseEventTime(req.EventTime)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Venue = req.Venue
	existing.EventDate = eventDate
	existing.EventTime = eventTimePtr

	if req.MaxParticipants != nil {
		existing.MaxParticipants = *req.MaxParticipants
	}
	if req.IsPublic != nil {
		existing.IsPublic = *req.IsPublic
	}

	// A PUT without custom_fields leaves the schema untouched. A PUT
	// with custom_fields replaces it, re-persisted in structured form
	// even when the client sent a legacy representation.
	if req.CustomFields != nil {
		schemaJSON, err := normalizeSchema(req.CustomFields)
		if err != nil {
			return nil, err
		}
		existing.CustomFields = schemaJSON
	}

	if err := s.Repo.UpdateEvent(existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// ===========================
// Delete Event
func (s *Service) DeleteEvent(id uint, sc middleware.SessionContext) error {
	existing, err := s.GetEventByID(id)
	if err != nil {
		return err
	}

	if existing.CreatedBy != sc.UserID {
		return ErrNotOwner
	}

	return s.Repo.DeleteEvent(id, sc.UserID)
}

// ===========================
// Helpers

func parseEventTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("15:04", raw)
	if err != nil {
		return nil, errors.New("invalid event_time format. Use HH:MM in 24-hour format")
	}
	normalized := time.Date(0, 1, 1, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	return &normalized, nil
}

// normalizeSchema accepts custom_fields in any supported payload form
// and returns the canonical structured JSON stored in the jsonb column.
func normalizeSchema(raw interface{}) (datatypes.JSON, error) {
	fields := fieldschema.Normalize(raw)

	for i, f := range fields {
		if err := fieldschema.ValidateName(f.Name, fields[:i], -1); err != nil {
			return nil, err
		}
		if f.Type == fieldschema.TypeSelect && len(f.Options) == 0 {
			return nil, fieldschema.ErrNoSelectOptions
		}
	}

	out, err := fieldschema.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}
