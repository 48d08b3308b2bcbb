package controllers

import (
	"net/http"

	"github.com/oliverbanks/rotaboard-backend/api/responses"
	"github.com/oliverbanks/rotaboard-backend/api/validators"
	rolessvc "github.com/oliverbanks/rotaboard-backend/internal/roles"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	"github.com/oliverbanks/rotaboard-backend/pkg/logger"
	"github.com/oliverbanks/rotaboard-backend/pkg/rowjson"
)

type roleRequest struct {
	Name   string  `json:"name" validate:"required"`
	Parent *string `json:"parent"`
}

func roleRow(role *models.Role) rowjson.Row {
	return rowjson.EncodeRow(rowjson.Row{
		"id":     role.ID,
		"name":   role.Name,
		"parent": role.ParentID,
	}, nil)
}

// RolesList serves the owner's roles with parent_id surfaced as "parent".
func RolesList(svc rolessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		roles, err := svc.ListRoles(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows := make([]rowjson.Row, 0, len(roles))
		for i := range roles {
			rows = append(rows, roleRow(&roles[i]))
		}
		responses.WriteSuccess(w, rows)
	}
}

func RoleCreate(svc rolessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload roleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		parentID, err := optionalUUID(payload.Parent, "ID given is not a valid UUID.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := svc.CreateRole(r.Context(), ownerID, payload.Name, parentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, roleRow(role))
	}
}

func RoleUpdate(svc rolessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		roleID, err := validators.ParseQueryUUID(r, "id", "Missing valid role ID from query params.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload roleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		parentID, err := optionalUUID(payload.Parent, "ID given is not a valid UUID.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := svc.UpdateRole(r.Context(), ownerID, roleID, payload.Name, parentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, roleRow(role))
	}
}

func RoleDelete(svc rolessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		roleID, err := validators.ParseQueryUUID(r, "id", "Invalid request - missing ID key.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteRole(r.Context(), ownerID, roleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "")
	}
}
