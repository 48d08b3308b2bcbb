package controllers

import (
	"net/http"

	"github.com/oliverbanks/rotaboard-backend/api/responses"
	"github.com/oliverbanks/rotaboard-backend/api/validators"
	rotassvc "github.com/oliverbanks/rotaboard-backend/internal/rotas"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/oliverbanks/rotaboard-backend/pkg/logger"
	"github.com/oliverbanks/rotaboard-backend/pkg/rowjson"
	"github.com/go-chi/chi/v5"
)

var rotaListRenames = map[string]string{"availability_id": "availability"}

var rotaVenueRenames = map[string]string{"rota_id": "rota"}

// RotasList serves the owner's rotas joined to their window dates.
func RotasList(svc rotassvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListRotas(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rowjson.EncodeRows(rows, rotaListRenames))
	}
}

func RotaCreate(svc rotassvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			Availability string `json:"availability" validate:"required"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		availabilityID, err := validators.ParseUUID(payload.Availability, "Invalid availability ID.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rota, err := svc.CreateRota(r.Context(), ownerID, availabilityID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rowjson.EncodeRow(rowjson.Row{
			"id":           rota.ID,
			"availability": rota.AvailabilityID,
		}, nil))
	}
}

// RotaGet serves the nested venue/position tree for one rota.
func RotaGet(svc rotassvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rotaID, err := validators.ParseUUID(chi.URLParam(r, "rota_id"), "ID given is not a valid UUID.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tree, err := svc.GetRotaTree(r.Context(), ownerID, rotaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rowjson.EncodeRow(tree, nil))
	}
}

// RotaReplace swaps the rota's whole venue tree for the submitted array.
func RotaReplace(svc rotassvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rotaID, err := validators.ParseUUID(chi.URLParam(r, "rota_id"), "ID given is not a valid UUID.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body, err := validators.DecodeRawList(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		venues, err := parseVenueInputs(body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ReplaceRotaTree(r.Context(), ownerID, rotaID, venues); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Rota updated.")
	}
}

// RotaVenues serves the flat venue listing for one rota.
func RotaVenues(svc rotassvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rotaID, err := validators.ParseUUID(chi.URLParam(r, "rota_id"), "ID given is not a valid UUID.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListRotaVenues(r.Context(), ownerID, rotaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rowjson.EncodeRows(rows, rotaVenueRenames))
	}
}

func parseVenueInputs(body []any) ([]rotassvc.VenueInput, error) {
	venues := make([]rotassvc.VenueInput, 0, len(body))
	for _, item := range body {
		venueMap, ok := item.(map[string]any)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Failed to read JSON in request.")
		}
		if err := validators.RequireKeys("body", venueMap, "name"); err != nil {
			return nil, err
		}

		input := rotassvc.VenueInput{Name: stringField(venueMap, "name")}
		if display, ok := venueMap["display_name"].(string); ok {
			input.DisplayName = &display
		}

		rawPositions, _ := venueMap["positions"].([]any)
		for _, rawPos := range rawPositions {
			posMap, ok := rawPos.(map[string]any)
			if !ok {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "Failed to read JSON in request.")
			}
			position := rotassvc.PositionInput{
				Start: stringField(posMap, "start"),
				End:   stringField(posMap, "end"),
				Notes: stringField(posMap, "notes"),
			}
			if raw, ok := posMap["role"].(string); ok && raw != "" {
				roleID, err := validators.ParseUUID(raw, "ID given is not a valid UUID.")
				if err != nil {
					return nil, err
				}
				position.Role = &roleID
			}
			input.Positions = append(input.Positions, position)
		}
		venues = append(venues, input)
	}
	return venues, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
