package models

import (
	"time"

	"github.com/google/uuid"
)

// PageView is an insert-only analytics record for a public page hit.
type PageView struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Path      string    `gorm:"column:path;not null;index"`
	Referrer  *string   `gorm:"column:referrer"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index"`
}
