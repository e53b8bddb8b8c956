package registration

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/arjunvnair/campus-event-backend/internal/auth"
	"github.com/arjunvnair/campus-event-backend/internal/event"
	"github.com/arjunvnair/campus-event-backend/internal/fieldschema"
	"github.com/arjunvnair/campus-event-backend/internal/notification"
	"github.com/arjunvnair/campus-event-backend/middleware"
)

var (
	ErrAlreadyRegistered   = errors.New("already registered for this event")
	ErrEventFull           = errors.New("event is full")
	ErrNotRegistered       = errors.New("not registered for this event")
	ErrParticipantNotFound = errors.New("participant not found")
)

// ValidationError carries per-field failures from the custom field
// validator so handlers can return them as a structured payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid custom field values (%d fields)", len(e.Fields))
}

// Service wraps registration business logic
type Service struct {
	Repo     *Repository
	EventSvc *event.Service
	AuthSvc  auth.Service
	Producer *notification.Producer
}

func NewService(repo *Repository, eventSvc *event.Service, authSvc auth.Service, producer *notification.Producer) *Service {
	return &Service{
		Repo:     repo,
		EventSvc: eventSvc,
		AuthSvc:  authSvc,
		Producer: producer,
	}
}

// ===========================
// Register

func (s *Service) Register(eventID uint, sc middleware.SessionContext, values fieldschema.ValueMap) (*Participant, error) {
	e, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.FindByEventAndUser(eventID, sc.UserID); err == nil {
		return nil, ErrAlreadyRegistered
	}

	if err := s.checkCapacity(e); err != nil {
		return nil, err
	}

	// Validation happens before any insert so a failed registration
	// never partially persists.
	if err := validateValues(e, values); err != nil {
		return nil, err
	}

	user, err := s.AuthSvc.GetUserByID(sc.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	valuesJSON, err := marshalValues(values)
	if err != nil {
		return nil, err
	}

	userID := user.ID
	p := &Participant{
		UUID:              uuid.NewString(),
		EventID:           eventID,
		UserID:            &userID,
		Name:              user.Name,
		EnrollmentNumber:  user.EnrollmentNumber,
		AmityEmail:        user.Email,
		PhoneNumber:       user.PhoneNumber,
		Branch:            user.Branch,
		Year:              user.Year,
		CustomFieldValues: valuesJSON,
	}

	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}

	s.notify(notification.TypeRegistrationConfirmed, e, p)
	return p, nil
}

// ExternalRegister registers a guest without a campus account.
func (s *Service) ExternalRegister(eventID uint, req *ExternalRegisterRequest) (*Participant, error) {
	e, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}

	if !e.IsPublic {
		return nil, errors.New("this event does not accept external registrations")
	}

	guest, err := s.AuthSvc.ExternalRegister(auth.ExternalRegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.FindByEventAndEmail(eventID, guest.Email); err == nil {
		return nil, ErrAlreadyRegistered
	}

	if err := s.checkCapacity(e); err != nil {
		return nil, err
	}

	if err := validateValues(e, req.CustomFieldValues); err != nil {
		return nil, err
	}

	valuesJSON, err := marshalValues(req.CustomFieldValues)
	if err != nil {
		return nil, err
	}

	p := &Participant{
		UUID:              uuid.NewString(),
		EventID:           eventID,
		Name:              guest.Name,
		AmityEmail:        guest.Email,
		PhoneNumber:       guest.PhoneNumber,
		CustomFieldValues: valuesJSON,
	}

	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}

	s.notify(notification.TypeRegistrationConfirmed, e, p)
	return p, nil
}

// ===========================
// Unregister

func (s *Service) Unregister(eventID uint, sc middleware.SessionContext) error {
	e, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return err
	}

	p, err := s.Repo.FindByEventAndUser(eventID, sc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotRegistered
		}
		return err
	}

	if err := s.Repo.Delete(p); err != nil {
		return err
	}

	s.notify(notification.TypeRegistrationCancelled, e, p)
	return nil
}

// ===========================
// Participant management (event creator only)

func (s *Service) ListParticipants(eventID uint, sc middleware.SessionContext) ([]Participant, error) {
	if _, err := s.requireOwnership(eventID, sc); err != nil {
		return nil, err
	}
	return s.Repo.ListByEvent(eventID)
}

func (s *Service) MarkAttendance(eventID uint, participantUUID string, attended bool, sc middleware.SessionContext) error {
	if _, err := s.requireOwnership(eventID, sc); err != nil {
		return err
	}

	if err := s.Repo.SetAttendance(eventID, participantUUID, attended); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}
	return nil
}

func (s *Service) RemoveParticipant(eventID uint, participantUUID string, sc middleware.SessionContext) error {
	e, err := s.requireOwnership(eventID, sc)
	if err != nil {
		return err
	}

	p, err := s.Repo.FindByUUID(eventID, participantUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}

	if err := s.Repo.Delete(p); err != nil {
		return err
	}

	s.notify(notification.TypeRegistrationCancelled, e, p)
	return nil
}

// ===========================
// Event update fan-out

// EventUpdated tells every registered participant that the event's
// details changed. Delivery is best effort.
func (s *Service) EventUpdated(e *event.Event) {
	participants, err := s.Repo.ListByEvent(e.ID)
	if err != nil {
		return
	}

	detail := "The event details have changed. Check the event page for the latest information."
	for i := range participants {
		s.notifyDetail(notification.TypeEventUpdated, e, &participants[i], detail)
	}
}

// ===========================
// Helpers

func (s *Service) requireOwnership(eventID uint, sc middleware.SessionContext) (*event.Event, error) {
	e, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}
	if e.CreatedBy != sc.UserID {
		return nil, event.ErrNotOwner
	}
	return e, nil
}

func (s *Service) checkCapacity(e *event.Event) error {
	if e.MaxParticipants <= 0 {
		return nil
	}
	count, err := s.Repo.CountByEvent(e.ID)
	if err != nil {
		return err
	}
	if count >= e.MaxParticipants {
		return ErrEventFull
	}
	return nil
}

func (s *Service) notify(msgType string, e *event.Event, p *Participant) {
	s.notifyDetail(msgType, e, p, "")
}

func (s *Service) notifyDetail(msgType string, e *event.Event, p *Participant, detail string) {
	if s.Producer == nil {
		return
	}

	var userID uint
	if p.UserID != nil {
		userID = *p.UserID
	}

	s.Producer.Publish(notification.Message{
		Type:          msgType,
		EventID:       e.ID,
		EventName:     e.Name,
		UserID:        userID,
		Recipient:     p.AmityEmail,
		RecipientName: p.Name,
		Detail:        detail,
	})
}

func validateValues(e *event.Event, values fieldschema.ValueMap) error {
	fieldErrs := fieldschema.Validate(e.Schema(), values)
	if fieldErrs == nil {
		return nil
	}

	out := make(map[string]string, len(fieldErrs))
	for name, err := range fieldErrs {
		out[name] = err.Error()
	}
	return &ValidationError{Fields: out}
}

func marshalValues(values fieldschema.ValueMap) (datatypes.JSON, error) {
	if values == nil {
		values = fieldschema.ValueMap{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
