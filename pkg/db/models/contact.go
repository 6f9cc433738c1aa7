package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a general enquiry submitted through the public contact form.
type Contact struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Email      string    `gorm:"column:email;not null"`
	Phone      *string   `gorm:"column:phone"`
	Subject    string    `gorm:"column:subject;not null"`
	Message    string    `gorm:"column:message;not null"`
	IsResolved bool      `gorm:"column:is_resolved;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
