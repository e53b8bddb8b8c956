package notification

import (
	"time"
)

// Message types carried over the Kafka topic.
const (
	TypeRegistrationConfirmed = "registration_confirmed"
	TypeRegistrationCancelled = "registration_cancelled"
	TypeEventUpdated          = "event_updated"
)

// Message is the payload published for every registration lifecycle
// change. The consumer fans it out to email and the in-app feed.
type Message struct {
	Type          string `json:"type"`
	EventID       uint   `json:"event_id"`
	EventName     string `json:"event_name"`
	UserID        uint   `json:"user_id,omitempty"` // zero for external participants
	Recipient     string `json:"recipient"`
	RecipientName string `json:"recipient_name"`
	Detail        string `json:"detail,omitempty"`
}

// InAppNotification - per-user, in-app bell notifications
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	EventID   uint      `gorm:"index" json:"event_id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"size:30;not null" json:"category"` // registration, event, system
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
