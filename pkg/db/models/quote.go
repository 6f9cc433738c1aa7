package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/kamaukinuthia/irrigo-backend/pkg/db/types"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
)

// Quote is a priced proposal tied to a prospective customer's irrigation
// project. Subtotal/VAT/Total are denormalized from LineItems and must stay
// re-derivable from them: Total == Subtotal * 1.16.
type Quote struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`

	CustomerName  string  `gorm:"column:customer_name;not null"`
	CustomerEmail string  `gorm:"column:customer_email;not null"`
	CustomerPhone string  `gorm:"column:customer_phone;not null"`
	Address       *string `gorm:"column:address"`

	ProjectType  string  `gorm:"column:project_type;not null"`
	AreaSize     string  `gorm:"column:area_size;not null"`
	CropType     *string `gorm:"column:crop_type"`
	Location     string  `gorm:"column:location;not null"`
	WaterSource  *string `gorm:"column:water_source"`
	BudgetRange  *string `gorm:"column:budget_range"`
	Timeline     *string `gorm:"column:timeline"`
	Requirements *string `gorm:"column:requirements"`
	Notes        *string `gorm:"column:notes"`

	LineItems dbtypes.LineItems `gorm:"column:line_items;type:jsonb;not null"`
	Subtotal  float64           `gorm:"column:subtotal;not null;default:0"`
	VAT       float64           `gorm:"column:vat;not null;default:0"`
	Total     float64           `gorm:"column:total;not null;default:0"`

	Status enums.QuoteStatus `gorm:"column:status;not null;default:pending"`
	SentAt *time.Time        `gorm:"column:sent_at"`

	// Advisory only: deleting the assignee must not cascade to the quote.
	AssignedToID *uuid.UUID `gorm:"column:assigned_to_id;type:uuid"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
