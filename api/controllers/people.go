package controllers

import (
	"net/http"

	"github.com/oliverbanks/rotaboard-backend/api/responses"
	"github.com/oliverbanks/rotaboard-backend/api/validators"
	peoplesvc "github.com/oliverbanks/rotaboard-backend/internal/people"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	"github.com/oliverbanks/rotaboard-backend/pkg/logger"
	"github.com/oliverbanks/rotaboard-backend/pkg/rowjson"
)

type personRequest struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"required"`
	Role  *string `json:"role"`
}

func personRow(person *models.Person) rowjson.Row {
	return rowjson.EncodeRow(rowjson.Row{
		"id":    person.ID,
		"name":  person.Name,
		"email": person.Email,
		"role":  person.RoleID,
	}, nil)
}

// PeopleList serves the owner's people with role_id surfaced as "role".
func PeopleList(svc peoplesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		people, err := svc.ListPeople(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows := make([]rowjson.Row, 0, len(people))
		for i := range people {
			rows = append(rows, personRow(&people[i]))
		}
		responses.WriteSuccess(w, rows)
	}
}

func PersonCreate(svc peoplesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload personRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		roleID, err := optionalUUID(payload.Role, "ID given is not a valid UUID.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		person, err := svc.CreatePerson(r.Context(), ownerID, payload.Name, payload.Email, roleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, personRow(person))
	}
}

func PersonUpdate(svc peoplesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		personID, err := validators.ParseQueryUUID(r, "id", "Missing valid user ID from query params.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload personRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		roleID, err := optionalUUID(payload.Role, "ID given is not a valid UUID.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		person, err := svc.UpdatePerson(r.Context(), ownerID, personID, payload.Name, payload.Email, roleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, personRow(person))
	}
}

func PersonDelete(svc peoplesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		personID, err := validators.ParseQueryUUID(r, "id", "Invalid request - missing ID key.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePerson(r.Context(), ownerID, personID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "")
	}
}
