package controllers

import (
	"net/http"

	"github.com/kamaukinuthia/irrigo-backend/api/responses"
	"github.com/kamaukinuthia/irrigo-backend/api/validators"
	teamsvc "github.com/kamaukinuthia/irrigo-backend/internal/team"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

// ListTeam handles the public team roster, ordered by display position.
func ListTeam(svc teamsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, members)
	}
}

type createTeamMemberRequest struct {
	Name         string  `json:"name" validate:"required"`
	RoleTitle    string  `json:"role_title" validate:"required"`
	Bio          string  `json:"bio"`
	PhotoURL     *string `json:"photo_url,omitempty"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
}

// CreateTeamMember handles admin roster additions.
func CreateTeamMember(svc teamsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createTeamMemberRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		member, err := svc.Create(r.Context(), teamsvc.CreateInput{
			Name:         payload.Name,
			RoleTitle:    payload.RoleTitle,
			Bio:          payload.Bio,
			PhotoURL:     payload.PhotoURL,
			DisplayOrder: payload.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, member)
	}
}

type updateTeamMemberRequest struct {
	Name         *string `json:"name,omitempty"`
	RoleTitle    *string `json:"role_title,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	PhotoURL     *string `json:"photo_url,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty" validate:"omitempty,gte=0"`
}

// UpdateTeamMember handles partial admin edits to a roster entry.
func UpdateTeamMember(svc teamsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateTeamMemberRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		member, err := svc.Update(r.Context(), id, teamsvc.UpdateInput{
			Name:         payload.Name,
			RoleTitle:    payload.RoleTitle,
			Bio:          payload.Bio,
			PhotoURL:     payload.PhotoURL,
			DisplayOrder: payload.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, member)
	}
}

// DeleteTeamMember handles admin roster removals.
func DeleteTeamMember(svc teamsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
