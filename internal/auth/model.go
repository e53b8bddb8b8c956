package auth

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	Email            string         `gorm:"size:255;unique;not null" json:"email"`
	PasswordHash     string         `gorm:"size:255;not null" json:"-"`
	EnrollmentNumber string         `gorm:"size:50" json:"enrollment_number"`
	PhoneNumber      string         `gorm:"size:20" json:"phone_number"`
	Branch           string         `gorm:"size:100" json:"branch"`
	Year             string         `gorm:"size:10" json:"year"`
	Role             string         `gorm:"size:20;default:student" json:"role"` // student, organizer
	Verified         bool           `gorm:"default:false" json:"verified"`
	VerifiedAt       *time.Time     `json:"verified_at,omitempty"`
	External         bool           `gorm:"default:false" json:"external"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
