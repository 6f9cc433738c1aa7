package controllers

import (
	"net/http"

	"github.com/kamaukinuthia/irrigo-backend/api/responses"
	"github.com/kamaukinuthia/irrigo-backend/api/validators"
	analyticssvc "github.com/kamaukinuthia/irrigo-backend/internal/analytics"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

type pageViewRequest struct {
	Path     string  `json:"path" validate:"required"`
	Referrer *string `json:"referrer,omitempty"`
}

// RecordPageView handles the public page view beacon. It always answers 202;
// a storage failure is logged inside the service, never shown to the visitor.
func RecordPageView(svc analyticssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload pageViewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		svc.RecordPageView(r.Context(), payload.Path, payload.Referrer)
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "recorded"})
	}
}

// Dashboard handles the admin dashboard snapshot.
func Dashboard(svc analyticssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.DashboardStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
