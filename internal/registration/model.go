package registration

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/arjunvnair/campus-event-backend/internal/fieldschema"
)

// Participant is one registration row. Rows are soft-deleted on
// unregistration, so the per-event uniqueness of user and email is
// enforced with partial indexes over live rows only; otherwise a
// soft-deleted row would block re-registration forever.
type Participant struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UUID              string         `gorm:"type:uuid;uniqueIndex" json:"uuid"`
	EventID           uint           `gorm:"not null;index;index:idx_event_user,unique,where:deleted_at IS NULL;index:idx_event_email,unique,where:deleted_at IS NULL" json:"event_id"`
	UserID            *uint          `gorm:"index:idx_event_user,unique,where:deleted_at IS NULL" json:"user_id,omitempty"` // nil for external participants
	Name              string         `gorm:"size:255;not null" json:"name"`
	EnrollmentNumber  string         `gorm:"size:50" json:"enrollment_number"`
	AmityEmail        string         `gorm:"size:255;not null;index:idx_event_email,unique,where:deleted_at IS NULL" json:"amity_email"`
	PhoneNumber       string         `gorm:"size:20" json:"phone_number"`
	Branch            string         `gorm:"size:100" json:"branch"`
	Year              string         `gorm:"size:10" json:"year"`
	Attendance        bool           `gorm:"default:false" json:"attendance"`
	CustomFieldValues datatypes.JSON `gorm:"type:jsonb" json:"custom_field_values"`
	RegisteredAt      time.Time      `gorm:"autoCreateTime" json:"registered_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// Values decodes the stored custom_field_values column.
func (p *Participant) Values() fieldschema.ValueMap {
	if len(p.CustomFieldValues) == 0 {
		return nil
	}
	var vm fieldschema.ValueMap
	if err := json.Unmarshal(p.CustomFieldValues, &vm); err != nil {
		return nil
	}
	return vm
}

type RegisterRequest struct {
	CustomFieldValues fieldschema.ValueMap `json:"custom_field_values"`
}

type ExternalRegisterRequest struct {
	Name              string               `json:"name" binding:"required"`
	Email             string               `json:"email" binding:"required,email"`
	PhoneNumber       string               `json:"phone_number"`
	CustomFieldValues fieldschema.ValueMap `json:"custom_field_values"`
}

type AttendanceRequest struct {
	Attendance bool `json:"attendance"`
}
