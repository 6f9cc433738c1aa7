package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kamaukinuthia/irrigo-backend/api/responses"
	"github.com/kamaukinuthia/irrigo-backend/api/validators"
	productsvc "github.com/kamaukinuthia/irrigo-backend/internal/products"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

// ListProducts handles the public catalog list.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := productsvc.ListFilters{
			Category:     validators.SanitizeString(r.URL.Query().Get("category"), 100),
			FeaturedOnly: r.URL.Query().Get("featured") == "true",
			InStockOnly:  r.URL.Query().Get("in_stock") == "true",
		}
		products, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// GetProductBySlug handles the public product detail page.
func GetProductBySlug(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		product, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Slug        string   `json:"slug" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Unit        string   `json:"unit"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Features    []string `json:"features,omitempty"`
	InStock     *bool    `json:"in_stock,omitempty"`
	IsFeatured  *bool    `json:"is_featured,omitempty"`
}

// CreateProduct handles admin catalog additions.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), productsvc.CreateInput{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Category:    payload.Category,
			Description: payload.Description,
			Price:       payload.Price,
			Unit:        payload.Unit,
			ImageURL:    payload.ImageURL,
			Features:    payload.Features,
			InStock:     payload.InStock,
			IsFeatured:  payload.IsFeatured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Name        *string   `json:"name,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Unit        *string   `json:"unit,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Features    *[]string `json:"features,omitempty"`
	InStock     *bool     `json:"in_stock,omitempty"`
	IsFeatured  *bool     `json:"is_featured,omitempty"`
}

// UpdateProduct handles partial admin edits to a catalog entry.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), id, productsvc.UpdateInput{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Category:    payload.Category,
			Description: payload.Description,
			Price:       payload.Price,
			Unit:        payload.Unit,
			ImageURL:    payload.ImageURL,
			Features:    payload.Features,
			InStock:     payload.InStock,
			IsFeatured:  payload.IsFeatured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct handles admin catalog removals.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
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

func idFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}
