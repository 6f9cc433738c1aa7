package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kamaukinuthia/irrigo-backend/api/responses"
	"github.com/kamaukinuthia/irrigo-backend/api/validators"
	quotesvc "github.com/kamaukinuthia/irrigo-backend/internal/quotes"
	dbtypes "github.com/kamaukinuthia/irrigo-backend/pkg/db/types"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
	"github.com/kamaukinuthia/irrigo-backend/pkg/pagination"
)

type lineItemRequest struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

func (r lineItemRequest) toLineItem() dbtypes.LineItem {
	return dbtypes.LineItem{
		ID:          strings.TrimSpace(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Quantity:    r.Quantity,
		Unit:        strings.TrimSpace(r.Unit),
		UnitPrice:   r.UnitPrice,
	}
}

type requestQuoteRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone string  `json:"customer_phone" validate:"required"`
	Address       *string `json:"address,omitempty"`

	ProjectType  string  `json:"project_type" validate:"required"`
	AreaSize     string  `json:"area_size" validate:"required"`
	Location     string  `json:"location" validate:"required"`
	CropType     *string `json:"crop_type,omitempty"`
	WaterSource  *string `json:"water_source,omitempty"`
	BudgetRange  *string `json:"budget_range,omitempty"`
	Timeline     *string `json:"timeline,omitempty"`
	Requirements *string `json:"requirements,omitempty"`

	Items []lineItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

func (r requestQuoteRequest) toInput() quotesvc.RequestInput {
	input := quotesvc.RequestInput{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Address:       r.Address,
		ProjectType:   r.ProjectType,
		AreaSize:      r.AreaSize,
		Location:      r.Location,
		CropType:      r.CropType,
		WaterSource:   r.WaterSource,
		BudgetRange:   r.BudgetRange,
		Timeline:      r.Timeline,
		Requirements:  r.Requirements,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, item.toLineItem())
	}
	return input
}

// RequestQuote handles the public quote request form.
func RequestQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload requestQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Request(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

// ListQuotes handles the admin quote list with filters and cursor pagination.
func ListQuotes(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := parseQuoteFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")}
		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func parseQuoteFilters(r *http.Request) (quotesvc.ListFilters, error) {
	filters := quotesvc.ListFilters{
		Query: validators.SanitizeString(r.URL.Query().Get("q"), 200),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := enums.QuoteStatus(raw)
		if !status.IsValid() {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "unknown status filter")
		}
		filters.Status = &status
	}
	if raw := r.URL.Query().Get("assigned_to"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid assigned_to")
		}
		filters.AssignedTo = &id
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from date")
		}
		filters.DateFrom = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid to date")
		}
		filters.DateTo = &to
	}
	return filters, nil
}

// GetQuote handles fetching a single quote for the admin detail view.
func GetQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := quoteIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

type updateQuoteRequest struct {
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	Address       *string `json:"address,omitempty"`

	ProjectType  *string `json:"project_type,omitempty"`
	AreaSize     *string `json:"area_size,omitempty"`
	Location     *string `json:"location,omitempty"`
	CropType     *string `json:"crop_type,omitempty"`
	WaterSource  *string `json:"water_source,omitempty"`
	BudgetRange  *string `json:"budget_range,omitempty"`
	Timeline     *string `json:"timeline,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	Items *[]lineItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

func (r updateQuoteRequest) toInput() quotesvc.UpdateInput {
	input := quotesvc.UpdateInput{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Address:       r.Address,
		ProjectType:   r.ProjectType,
		AreaSize:      r.AreaSize,
		Location:      r.Location,
		CropType:      r.CropType,
		WaterSource:   r.WaterSource,
		BudgetRange:   r.BudgetRange,
		Timeline:      r.Timeline,
		Requirements:  r.Requirements,
		Notes:         r.Notes,
	}
	if r.Items != nil {
		items := make(dbtypes.LineItems, 0, len(*r.Items))
		for _, item := range *r.Items {
			items = append(items, item.toLineItem())
		}
		input.Items = &items
	}
	return input
}

// UpdateQuote handles admin edits to quote details and line items.
func UpdateQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := quoteIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

type updateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateQuoteStatus handles admin status transitions.
func UpdateQuoteStatus(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := quoteIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateQuoteStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.UpdateStatus(r.Context(), id, enums.QuoteStatus(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

type assignQuoteRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

// AssignQuote handles assigning a quote to a staff member, or clearing the
// assignment when assignee_id is null.
func AssignQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := quoteIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload assignQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var assigneeID *uuid.UUID
		if payload.AssigneeID != nil {
			parsed, err := uuid.Parse(*payload.AssigneeID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid assignee id"))
				return
			}
			assigneeID = &parsed
		}

		quote, err := svc.Assign(r.Context(), id, assigneeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// DeleteQuote handles admin quote deletion.
func DeleteQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := quoteIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SendQuote renders the quote document and delivers it to the customer.
func SendQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := quoteIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Send(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// QuoteDocument returns the rendered quote document as HTML for preview or
// printing.
func QuoteDocument(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := quoteIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		html, err := svc.Document(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	}
}

// QuoteMaterials returns the fixed materials picklist used when composing a
// quote by hand in the back office.
func QuoteMaterials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, quotesvc.SuggestedMaterials())
	}
}

func quoteIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quote id")
	}
	return id, nil
}
