package controllers

import (
	"net/http"

	"github.com/oliverbanks/rotaboard-backend/api/responses"
	"github.com/oliverbanks/rotaboard-backend/api/validators"
	venuessvc "github.com/oliverbanks/rotaboard-backend/internal/venues"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	"github.com/oliverbanks/rotaboard-backend/pkg/logger"
	"github.com/oliverbanks/rotaboard-backend/pkg/rowjson"
)

func venueRow(venue *models.Venue) rowjson.Row {
	return rowjson.EncodeRow(rowjson.Row{
		"id":           venue.ID,
		"owner_id":     venue.OwnerID,
		"rota_id":      venue.RotaID,
		"name":         venue.Name,
		"display_name": venue.DisplayName,
		"index":        venue.Index,
		"created_at":   venue.CreatedAt,
	}, nil)
}

// VenuesList serves every venue the owner has, standalone and rota-bound.
func VenuesList(svc venuessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		venues, err := svc.ListVenues(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows := make([]rowjson.Row, 0, len(venues))
		for i := range venues {
			rows = append(rows, venueRow(&venues[i]))
		}
		responses.WriteSuccess(w, rows)
	}
}

func VenueCreate(svc venuessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			Name        string  `json:"name" validate:"required"`
			DisplayName *string `json:"display_name"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		venue, err := svc.CreateVenue(r.Context(), ownerID, payload.Name, payload.DisplayName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, venueRow(venue))
	}
}

func VenueUpdate(svc venuessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		venueID, err := validators.ParseQueryUUID(r, "id", "Missing valid venue ID from query params.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			Name    string  `json:"name" validate:"required"`
			Display *string `json:"display"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		venue, err := svc.UpdateVenue(r.Context(), ownerID, venueID, payload.Name, payload.Display)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, venueRow(venue))
	}
}

func VenueDelete(svc venuessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		venueID, err := validators.ParseQueryUUID(r, "id", "Invalid request - missing ID key.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteVenue(r.Context(), ownerID, venueID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Venue deleted.")
	}
}
