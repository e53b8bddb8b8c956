package event

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}

	var count int64
	if err := r.DB.Table("participants").
		Where("event_id = ? AND deleted_at IS NULL", id).
		Count(&count).Error; err != nil {
		return nil, err
	}

	e.ParticipantCount = int(count)
	return &e, nil
}

// ListEvents returns public upcoming events with pagination and search.
func (r *Repository) ListEvents(limit, offset int, search string) ([]Event, error) {
	var events []Event

	query := r.DB.Where("is_public = TRUE")

	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", ilike, ilike)
	}

	err := query.
		Order("event_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	r.fillParticipantCounts(events)
	return events, nil
}

// ListEventsByCreator returns every event owned by an organizer,
// including unpublished ones.
func (r *Repository) ListEventsByCreator(createdBy uint, limit, offset int) ([]Event, error) {
	var events []Event

	err := r.DB.
		Where("created_by = ?", createdBy).
		Order("event_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	r.fillParticipantCounts(events)
	return events, nil
}

func (r *Repository) fillParticipantCounts(events []Event) {
	for i := range events {
		var count int64
		r.DB.Table("participants").
			Where("event_id = ? AND deleted_at IS NULL", events[i].ID).
			Count(&count)
		events[i].ParticipantCount = int(count)
	}
}

func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

func (r *Repository) DeleteEvent(id uint, createdBy uint) error {
	return r.DB.
		Where("id = ? AND created_by = ?", id, createdBy).
		Delete(&Event{}).Error
}

func (r *Repository) CountParticipants(eventID uint) (int, error) {
	var count int64
	err := r.DB.Table("participants").
		Where("event_id = ? AND deleted_at IS NULL", eventID).
		Count(&count).Error
	return int(count), err
}
