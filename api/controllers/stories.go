package controllers

import (
	"net/http"

	"github.com/kamaukinuthia/irrigo-backend/api/responses"
	"github.com/kamaukinuthia/irrigo-backend/api/validators"
	storysvc "github.com/kamaukinuthia/irrigo-backend/internal/stories"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

// ListStories handles the public success stories page.
func ListStories(svc storysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featuredOnly := r.URL.Query().Get("featured") == "true"
		stories, err := svc.List(r.Context(), featuredOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stories)
	}
}

type createStoryRequest struct {
	CustomerName string  `json:"customer_name" validate:"required"`
	Location     string  `json:"location"`
	ProjectType  string  `json:"project_type"`
	Story        string  `json:"story" validate:"required"`
	ImageURL     *string `json:"image_url,omitempty"`
	IsFeatured   bool    `json:"is_featured"`
}

// CreateStory handles admin story additions.
func CreateStory(svc storysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createStoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		story, err := svc.Create(r.Context(), storysvc.CreateInput{
			CustomerName: payload.CustomerName,
			Location:     payload.Location,
			ProjectType:  payload.ProjectType,
			Story:        payload.Story,
			ImageURL:     payload.ImageURL,
			IsFeatured:   payload.IsFeatured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, story)
	}
}

type updateStoryRequest struct {
	CustomerName *string `json:"customer_name,omitempty"`
	Location     *string `json:"location,omitempty"`
	ProjectType  *string `json:"project_type,omitempty"`
	Story        *string `json:"story,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	IsFeatured   *bool   `json:"is_featured,omitempty"`
}

// UpdateStory handles partial admin edits to a story.
func UpdateStory(svc storysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateStoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		story, err := svc.Update(r.Context(), id, storysvc.UpdateInput{
			CustomerName: payload.CustomerName,
			Location:     payload.Location,
			ProjectType:  payload.ProjectType,
			Story:        payload.Story,
			ImageURL:     payload.ImageURL,
			IsFeatured:   payload.IsFeatured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, story)
	}
}

// DeleteStory handles admin story removals.
func DeleteStory(svc storysvc.Service, logg *logger.Logger) http.HandlerFunc {
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
