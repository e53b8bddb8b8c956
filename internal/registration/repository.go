package registration

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Participant) error {
	return r.DB.Create(p).Error
}

func (r *Repository) FindByEventAndUser(eventID, userID uint) (*Participant, error) {
	var p Participant
	err := r.DB.
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindByEventAndEmail(eventID uint, email string) (*Participant, error) {
	var p Participant
	err := r.DB.
		Where("event_id = ? AND amity_email = ?", eventID, email).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindByUUID(eventID uint, uuid string) (*Participant, error) {
	var p Participant
	err := r.DB.
		Where("event_id = ? AND uuid = ?", eventID, uuid).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListByEvent(eventID uint) ([]Participant, error) {
	var participants []Participant
	err := r.DB.
		Where("event_id = ?", eventID).
		Order("registered_at ASC").
		Find(&participants).Error
	return participants, err
}

func (r *Repository) CountByEvent(eventID uint) (int, error) {
	var count int64
	err := r.DB.Model(&Participant{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return int(count), err
}

func (r *Repository) Delete(p *Participant) error {
	return r.DB.Delete(p).Error
}

func (r *Repository) SetAttendance(eventID uint, uuid string, attended bool) error {
	res := r.DB.Model(&Participant{}).
		Where("event_id = ? AND uuid = ?", eventID, uuid).
		Update("attendance", attended)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
