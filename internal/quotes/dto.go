package quotes

import (
	"time"

	"github.com/google/uuid"

	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	dbtypes "github.com/kamaukinuthia/irrigo-backend/pkg/db/types"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
)

// RequestInput carries a public quote request. Items are optional; when the
// customer supplies none, a starter item is derived from the project type.
type RequestInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       *string

	ProjectType  string
	AreaSize     string
	Location     string
	CropType     *string
	WaterSource  *string
	BudgetRange  *string
	Timeline     *string
	Requirements *string

	Items dbtypes.LineItems
}

// UpdateInput captures a partial admin edit. Nil fields are left untouched;
// a non-nil Items slice replaces the document and recomputes totals.
type UpdateInput struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	Address       *string

	ProjectType  *string
	AreaSize     *string
	Location     *string
	CropType     *string
	WaterSource  *string
	BudgetRange  *string
	Timeline     *string
	Requirements *string
	Notes        *string

	Items *dbtypes.LineItems
}

// ListFilters describe the inputs supported by the admin quote list.
type ListFilters struct {
	Status     *enums.QuoteStatus
	AssignedTo *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Query      string
}

// QuoteList wraps the paginated quotes plus the next page cursor.
type QuoteList struct {
	Quotes     []models.Quote `json:"quotes"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
