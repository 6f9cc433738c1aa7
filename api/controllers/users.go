package controllers

import (
	"net/http"

	"github.com/kamaukinuthia/irrigo-backend/api/responses"
	"github.com/kamaukinuthia/irrigo-backend/api/validators"
	usersvc "github.com/kamaukinuthia/irrigo-backend/internal/users"
	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

type staffUser struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Phone       *string `json:"phone,omitempty"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"is_active"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
}

func toStaffUser(user *models.User) staffUser {
	out := staffUser{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Role:      user.Role.String(),
		IsActive:  user.IsActive,
	}
	if user.LastLoginAt != nil {
		formatted := user.LastLoginAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		out.LastLoginAt = &formatted
	}
	return out
}

type createUserRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role" validate:"omitempty,oneof=super_admin admin staff"`
}

type createUserResponse struct {
	User         staffUser `json:"user"`
	TempPassword string    `json:"temp_password"`
}

// CreateUser handles admin staff account creation. The generated temporary
// password is returned exactly once, in this response.
func CreateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), usersvc.CreateInput{
			Email:     payload.Email,
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Phone:     payload.Phone,
			Role:      enums.StaffRole(payload.Role),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, createUserResponse{
			User:         toStaffUser(created.User),
			TempPassword: created.TempPassword,
		})
	}
}

// ListUsers handles the admin staff roster.
func ListUsers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]staffUser, 0, len(users))
		for i := range users {
			out = append(out, toStaffUser(&users[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type updateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=super_admin admin staff"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// UpdateUser handles partial admin edits to a staff account.
func UpdateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := usersvc.UpdateInput{
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Phone:     payload.Phone,
			IsActive:  payload.IsActive,
		}
		if payload.Role != nil {
			role := enums.StaffRole(*payload.Role)
			input.Role = &role
		}
		user, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toStaffUser(user))
	}
}

// DeactivateUser handles disabling a staff account. The row is kept so quote
// assignment history stays intact.
func DeactivateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Deactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
