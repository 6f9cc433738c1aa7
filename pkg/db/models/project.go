package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a completed installation showcased in the portfolio.
type Project struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Location    string     `gorm:"column:location;not null"`
	ProjectType string     `gorm:"column:project_type;not null"`
	Description string     `gorm:"column:description;not null"`
	AreaSize    string     `gorm:"column:area_size;not null"`
	ImageURL    *string    `gorm:"column:image_url"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
