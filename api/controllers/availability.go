package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/oliverbanks/rotaboard-backend/api/responses"
	"github.com/oliverbanks/rotaboard-backend/api/validators"
	availabilitysvc "github.com/oliverbanks/rotaboard-backend/internal/availability"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/oliverbanks/rotaboard-backend/pkg/logger"
	"github.com/oliverbanks/rotaboard-backend/pkg/rowjson"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type availabilityRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

func windowRow(window *models.Availability) rowjson.Row {
	return rowjson.EncodeRow(rowjson.Row{
		"id":    window.ID,
		"start": window.StartDate,
		"end":   window.EndDate,
	}, nil)
}

// AvailabilityList serves the owner's windows, optionally filtered by ?id=.
func AvailabilityList(svc availabilitysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filter *uuid.UUID
		if raw := r.URL.Query().Get("id"); raw != "" {
			id, err := validators.ParseUUID(raw, "ID given is not a valid UUID.")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			filter = &id
		}

		windows, err := svc.ListWindows(r.Context(), ownerID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows := make([]rowjson.Row, 0, len(windows))
		for i := range windows {
			rows = append(rows, windowRow(&windows[i]))
		}
		responses.WriteSuccess(w, rows)
	}
}

func AvailabilityCreate(svc availabilitysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload availabilityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		window, err := svc.CreateWindow(r.Context(), ownerID, payload.Start, payload.End)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, windowRow(window))
	}
}

func AvailabilityUpdate(svc availabilitysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		windowID, err := validators.ParseQueryUUID(r, "id", "Missing valid availability ID from query params.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload availabilityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		window, err := svc.UpdateWindow(r.Context(), ownerID, windowID, payload.Start, payload.End)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, windowRow(window))
	}
}

func AvailabilityDelete(svc availabilitysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		windowID, err := validators.ParseQueryUUID(r, "id", "Invalid request - missing ID key.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteWindow(r.Context(), ownerID, windowID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Availability deleted.")
	}
}

// UserAvailability serves the filled responses for one window, joined to
// person names.
func UserAvailability(svc availabilitysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := ownerFromContext(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw := r.URL.Query().Get("id")
		if raw == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "Missing ID from GET params."))
			return
		}
		availabilityID, err := validators.ParseUUID(raw, "ID given is not a valid UUID.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListFilled(r.Context(), availabilityID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rowjson.EncodeRows(rows, nil))
	}
}

// Fill accepts a participant's availability payload on the public fill link.
// The row id in the path is the only capability check, so every failure mode
// reports the same "Invalid ID.".
func Fill(svc availabilitysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filledID, err := validators.ParseUUID(chi.URLParam(r, "id"), "Invalid ID.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			io.Copy(io.Discard, r.Body)
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid ID."))
			return
		}

		if err := svc.Fill(r.Context(), filledID, payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Availability updated.")
	}
}
