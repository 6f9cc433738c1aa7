package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	dbtypes "github.com/kamaukinuthia/irrigo-backend/pkg/db/types"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
	"github.com/kamaukinuthia/irrigo-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Notifier delivers quote documents and acknowledgements to the customer.
type Notifier interface {
	SendQuoteDocument(ctx context.Context, quote *models.Quote, html string) error
	SendQuoteAcknowledgement(ctx context.Context, quote *models.Quote) error
}

type service struct {
	repo     Repository
	tx       txRunner
	renderer *DocumentRenderer
	notifier Notifier
	logg     *logger.Logger
}

// starterPrices seed a single-line estimate when a customer submits a quote
// request without picking any materials.
var starterPrices = map[string]float64{
	"drip":       45000,
	"sprinkler":  60000,
	"pivot":      250000,
	"greenhouse": 120000,
}

const defaultStarterPrice = 50000

// NewService builds the quote lifecycle service.
func NewService(repo Repository, tx txRunner, renderer *DocumentRenderer, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotes repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("document renderer required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{repo: repo, tx: tx, renderer: renderer, notifier: notifier, logg: logg}, nil
}

func (s *service) Request(ctx context.Context, input RequestInput) (*models.Quote, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email required")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}
	if strings.TrimSpace(input.ProjectType) == "" || strings.TrimSpace(input.AreaSize) == "" || strings.TrimSpace(input.Location) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project type, area size and location required")
	}

	items := NormalizeItems(input.Items)
	if len(items) == 0 {
		items = dbtypes.LineItems{starterItem(input.ProjectType)}
	}
	totals := ComputeTotals(items)

	quote := &models.Quote{
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Address:       input.Address,
		ProjectType:   strings.TrimSpace(input.ProjectType),
		AreaSize:      strings.TrimSpace(input.AreaSize),
		Location:      strings.TrimSpace(input.Location),
		CropType:      input.CropType,
		WaterSource:   input.WaterSource,
		BudgetRange:   input.BudgetRange,
		Timeline:      input.Timeline,
		Requirements:  input.Requirements,
		LineItems:     items,
		Subtotal:      totals.Subtotal,
		VAT:           totals.VAT,
		Total:         totals.Total,
		Status:        enums.QuoteStatusPending,
	}

	created, err := s.repo.Create(ctx, quote)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quote")
	}

	// Acknowledgement is best-effort and must not delay the public
	// response. The detached context survives the request ending.
	ackCtx := context.WithoutCancel(ctx)
	go func() {
		if ackErr := s.notifier.SendQuoteAcknowledgement(ackCtx, created); ackErr != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithQuoteID(ackCtx, created.ID.String()), "quote.acknowledgement.failed")
		}
	}()

	return created, nil
}

func starterItem(projectType string) dbtypes.LineItem {
	price, ok := starterPrices[strings.ToLower(strings.TrimSpace(projectType))]
	if !ok {
		price = defaultStarterPrice
	}
	return dbtypes.LineItem{
		ID:          uuid.NewString(),
		Name:        "Irrigation system estimate",
		Description: fmt.Sprintf("Preliminary estimate for a %s system", strings.TrimSpace(projectType)),
		Quantity:    1,
		Unit:        "lot",
		UnitPrice:   price,
		Total:       ItemTotal(1, price),
	}
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*QuoteList, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	return s.load(ctx, id)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Quote, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}

	updates := map[string]any{}
	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = strings.TrimSpace(*v)
		}
	}
	setString("customer_name", input.CustomerName)
	setString("customer_email", input.CustomerEmail)
	setString("customer_phone", input.CustomerPhone)
	setString("project_type", input.ProjectType)
	setString("area_size", input.AreaSize)
	setString("location", input.Location)
	if input.Address != nil {
		updates["address"] = input.Address
	}
	if input.CropType != nil {
		updates["crop_type"] = input.CropType
	}
	if input.WaterSource != nil {
		updates["water_source"] = input.WaterSource
	}
	if input.BudgetRange != nil {
		updates["budget_range"] = input.BudgetRange
	}
	if input.Timeline != nil {
		updates["timeline"] = input.Timeline
	}
	if input.Requirements != nil {
		updates["requirements"] = input.Requirements
	}
	if input.Notes != nil {
		updates["notes"] = input.Notes
	}

	if input.Items != nil {
		items := NormalizeItems(*input.Items)
		if len(items) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote must keep at least one line item")
		}
		totals := ComputeTotals(items)
		updates["line_items"] = items
		updates["subtotal"] = totals.Subtotal
		updates["vat"] = totals.VAT
		updates["total"] = totals.Total
	}

	if len(updates) == 0 {
		return s.load(ctx, id)
	}
	updates["updated_at"] = time.Now().UTC()

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := findForUpdate(ctx, repo, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) (*models.Quote, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown quote status").WithDetails(map[string]any{"status": status})
	}
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	updates := map[string]any{"status": status, "updated_at": time.Now().UTC()}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
	}
	return s.load(ctx, id)
}

func (s *service) Assign(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) (*models.Quote, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	updates := map[string]any{"assigned_to_id": assigneeID, "updated_at": time.Now().UTC()}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign quote")
	}
	return s.load(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete quote")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	return nil
}

func (s *service) Send(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.Render(quote)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendQuoteDocument(ctx, quote, html); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deliver quote document")
	}

	sentAt := time.Now().UTC()
	updates := map[string]any{"sent_at": sentAt, "updated_at": sentAt}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record quote sent")
	}

	quote.SentAt = &sentAt
	quote.UpdatedAt = sentAt
	if s.logg != nil {
		s.logg.Info(s.logg.WithQuoteID(ctx, quote.ID.String()), "quote.sent")
	}
	return quote, nil
}

func (s *service) Document(ctx context.Context, id uuid.UUID) (string, error) {
	quote, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(quote)
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return quote, nil
}

func findForUpdate(ctx context.Context, repo Repository, id uuid.UUID) (*models.Quote, error) {
	quote, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return quote, nil
}
