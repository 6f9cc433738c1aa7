package controllers

import (
	"net/http"

	"github.com/kamaukinuthia/irrigo-backend/api/responses"
	"github.com/kamaukinuthia/irrigo-backend/api/validators"
	contactsvc "github.com/kamaukinuthia/irrigo-backend/internal/contacts"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

type submitContactRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty"`
	Subject string  `json:"subject"`
	Message string  `json:"message" validate:"required"`
}

// SubmitContact handles the public contact form.
func SubmitContact(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload submitContactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contact, err := svc.Create(r.Context(), contactsvc.CreateInput{
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Subject: payload.Subject,
			Message: payload.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, contact)
	}
}

// ListContacts handles the admin enquiry inbox.
func ListContacts(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unresolvedOnly := r.URL.Query().Get("unresolved") == "true"
		contacts, err := svc.List(r.Context(), unresolvedOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, contacts)
	}
}

type resolveContactRequest struct {
	Resolved bool `json:"resolved"`
}

// ResolveContact handles toggling the resolved flag on an enquiry.
func ResolveContact(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload resolveContactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contact, err := svc.Resolve(r.Context(), id, payload.Resolved)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, contact)
	}
}

// DeleteContact handles admin enquiry removal.
func DeleteContact(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
