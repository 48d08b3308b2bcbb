package controllers

import (
	"context"

	"github.com/oliverbanks/rotaboard-backend/api/middleware"
	"github.com/oliverbanks/rotaboard-backend/api/validators"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/google/uuid"
)

func ownerFromContext(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.OwnerIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "Not logged in.")
	}
	return id, nil
}

// optionalUUID parses a nullable id field. Empty string and nil both mean
// absent.
func optionalUUID(raw *string, message string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := validators.ParseUUID(*raw, message)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
