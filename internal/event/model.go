package event

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/arjunvnair/campus-event-backend/internal/fieldschema"
)

type Event struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Venue           string         `gorm:"type:text" json:"venue"`
	EventDate       time.Time      `gorm:"not null;index" json:"event_date"`
	EventTime       *time.Time     `json:"event_time,omitempty"`
	MaxParticipants int            `gorm:"default:0" json:"max_participants"` // 0 = unlimited
	IsPublic        bool           `gorm:"default:false" json:"is_public"`
	CreatedBy       uint           `gorm:"not null;index" json:"created_by"`
	CustomFields    datatypes.JSON `gorm:"type:jsonb" json:"custom_fields"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	ParticipantCount int `gorm:"-" json:"participant_count"`
}

// Schema decodes the stored custom_fields column into its structured
// form. Rows written by older clients may hold a JSON string or a
// comma-separated list; both are upgraded here.
func (e *Event) Schema() []fieldschema.Field {
	if len(e.CustomFields) == 0 {
		return nil
	}
	return fieldschema.Normalize([]byte(e.CustomFields))
}

type CreateEventRequest struct {
	Name            string      `json:"name" binding:"required"`
	Description     string      `json:"description" binding:"required"`
	Venue           string      `json:"venue" binding:"required"`
	EventDate       string      `json:"event_date" binding:"required"` // "2006-01-02"
	EventTime       string      `json:"event_time,omitempty"`          // "15:04"
	MaxParticipants int         `json:"max_participants,omitempty"`
	IsPublic        *bool       `json:"is_public,omitempty"`
	CustomFields    interface{} `json:"custom_fields,omitempty"`
}

type UpdateEventRequest struct {
	ID              uint        `json:"-"`
	Name            string      `json:"name" binding:"required"`
	Description     string      `json:"description" binding:"required"`
	Venue           string      `json:"venue" binding:"required"`
	EventDate       string      `json:"event_date" binding:"required"`
	EventTime       string      `json:"event_time,omitempty"`
	MaxParticipants *int        `json:"max_participants,omitempty"`
	IsPublic        *bool       `json:"is_public,omitempty"`
	CustomFields    interface{} `json:"custom_fields,omitempty"`
}
