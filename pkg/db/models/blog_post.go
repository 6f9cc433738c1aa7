package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is an article on the public site.
type BlogPost struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Slug        string     `gorm:"column:slug;not null;uniqueIndex"`
	Excerpt     string     `gorm:"column:excerpt;not null"`
	Content     string     `gorm:"column:content;not null"`
	CoverImage  *string    `gorm:"column:cover_image"`
	AuthorName  string     `gorm:"column:author_name;not null"`
	IsPublished bool       `gorm:"column:is_published;not null;default:false"`
	PublishedAt *time.Time `gorm:"column:published_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
