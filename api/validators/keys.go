package validators

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
)

// DecodeRawBody reads a free-form JSON object body. Used where the payload
// shape cannot be expressed as a struct (fill payloads, rota trees).
func DecodeRawBody(r *http.Request) (map[string]any, error) {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Failed to read JSON in request.")
	}
	return body, nil
}

// DecodeRawList reads a free-form JSON array body.
func DecodeRawList(r *http.Request) ([]any, error) {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	var body []any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Failed to read JSON in request.")
	}
	return body, nil
}

// RequireKeys checks a decoded body for the listed keys. The source names
// where the map came from ("body", "query") for the log line; the public
// message never varies.
func RequireKeys(source string, body map[string]any, keys ...string) error {
	var missing []string
	for _, key := range keys {
		if _, ok := body[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	cause := fmt.Errorf("missing keys %v in %s", missing, source)
	return pkgerrors.Wrap(pkgerrors.CodeValidation, cause, "Invalid request - missing keys.")
}
