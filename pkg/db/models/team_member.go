package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamMember is a staff profile shown on the public about page.
type TeamMember struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	RoleTitle    string    `gorm:"column:role_title;not null"`
	Bio          string    `gorm:"column:bio;not null"`
	PhotoURL     *string   `gorm:"column:photo_url"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
