package models

import (
	"time"

	"github.com/google/uuid"
)

// SuccessStory is a customer testimonial tied to a delivered project.
type SuccessStory struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName string    `gorm:"column:customer_name;not null"`
	Location     string    `gorm:"column:location;not null"`
	ProjectType  string    `gorm:"column:project_type;not null"`
	Story        string    `gorm:"column:story;not null"`
	ImageURL     *string   `gorm:"column:image_url"`
	IsFeatured   bool      `gorm:"column:is_featured;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
