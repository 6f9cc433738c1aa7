package controllers

import (
	"net/http"
	"time"

	"github.com/kamaukinuthia/irrigo-backend/api/responses"
	"github.com/kamaukinuthia/irrigo-backend/api/validators"
	projectsvc "github.com/kamaukinuthia/irrigo-backend/internal/projects"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

// ListProjects handles the public portfolio, optionally filtered by type.
func ListProjects(svc projectsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := svc.List(r.Context(), r.URL.Query().Get("type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, projects)
	}
}

type createProjectRequest struct {
	Title       string  `json:"title" validate:"required"`
	Location    string  `json:"location"`
	ProjectType string  `json:"project_type"`
	Description string  `json:"description"`
	AreaSize    string  `json:"area_size"`
	ImageURL    *string `json:"image_url,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

// CreateProject handles admin portfolio additions.
func CreateProject(svc projectsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProjectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		completedAt, err := parseOptionalDate(payload.CompletedAt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		project, err := svc.Create(r.Context(), projectsvc.CreateInput{
			Title:       payload.Title,
			Location:    payload.Location,
			ProjectType: payload.ProjectType,
			Description: payload.Description,
			AreaSize:    payload.AreaSize,
			ImageURL:    payload.ImageURL,
			CompletedAt: completedAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, project)
	}
}

type updateProjectRequest struct {
	Title       *string `json:"title,omitempty"`
	Location    *string `json:"location,omitempty"`
	ProjectType *string `json:"project_type,omitempty"`
	Description *string `json:"description,omitempty"`
	AreaSize    *string `json:"area_size,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

// UpdateProject handles partial admin edits to a portfolio entry.
func UpdateProject(svc projectsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProjectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		completedAt, err := parseOptionalDate(payload.CompletedAt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		project, err := svc.Update(r.Context(), id, projectsvc.UpdateInput{
			Title:       payload.Title,
			Location:    payload.Location,
			ProjectType: payload.ProjectType,
			Description: payload.Description,
			AreaSize:    payload.AreaSize,
			ImageURL:    payload.ImageURL,
			CompletedAt: completedAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, project)
	}
}

// DeleteProject handles admin portfolio removals.
func DeleteProject(svc projectsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		// Bare dates are accepted too.
		parsed, err = time.Parse("2006-01-02", *raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date")
		}
	}
	return &parsed, nil
}
