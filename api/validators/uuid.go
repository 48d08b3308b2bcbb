package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/google/uuid"
)

// ParseUUID validates raw as a UUID. The caller supplies the public message
// since different endpoints report bad ids differently.
func ParseUUID(raw, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, message)
	}
	return id, nil
}

// ParseQueryUUID pulls a UUID out of the query string.
func ParseQueryUUID(r *http.Request, key, message string) (uuid.UUID, error) {
	return ParseUUID(r.URL.Query().Get(key), message)
}
