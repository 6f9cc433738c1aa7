package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
	"github.com/kamaukinuthia/irrigo-backend/pkg/pagination"
)

// Repository defines persistence operations for the quotes table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*QuoteList, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context) (map[enums.QuoteStatus]int64, error)
}

// Service defines quote lifecycle operations.
type Service interface {
	Request(ctx context.Context, input RequestInput) (*models.Quote, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*QuoteList, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Quote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) (*models.Quote, error)
	Assign(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) (*models.Quote, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Send(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	Document(ctx context.Context, id uuid.UUID) (string, error)
}
