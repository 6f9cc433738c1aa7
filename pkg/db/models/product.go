package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents a catalog listing shown on the public site and used to
// prefill quote line items.
type Product struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	Slug        string         `gorm:"column:slug;not null;uniqueIndex"`
	Category    string         `gorm:"column:category;not null"`
	Description string         `gorm:"column:description;not null"`
	Price       float64        `gorm:"column:price;not null"`
	Unit        string         `gorm:"column:unit;not null;default:pcs"`
	ImageURL    *string        `gorm:"column:image_url"`
	Features    pq.StringArray `gorm:"column:features;type:text[];not null;default:ARRAY[]::text[]"`
	InStock     bool           `gorm:"column:in_stock;not null;default:true"`
	IsFeatured  bool           `gorm:"column:is_featured;not null;default:false"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
