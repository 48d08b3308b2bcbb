package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func requireTypedMessage(t *testing.T, err error, code pkgerrors.Code, message string) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
	assert.Equal(t, message, typed.Message())
}

func TestDecodeJSONBodyHappyPath(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"a@b.com","password":"pw","extra":1}`))
	var body loginBody
	require.NoError(t, DecodeJSONBody(req, &body))
	assert.Equal(t, "a@b.com", body.Email)
}

func TestDecodeJSONBodyBadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{not json`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	requireTypedMessage(t, err, pkgerrors.CodeValidation, "Failed to read JSON in request.")
}

func TestDecodeJSONBodyMissingRequired(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"a@b.com"}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	requireTypedMessage(t, err, pkgerrors.CodeValidation, "Invalid request - missing keys.")
}

func TestDecodeJSONBodyInvalidEmail(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"nope","password":"pw"}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Contains(t, typed.Message(), "email")
}

func TestRequireKeys(t *testing.T) {
	body := map[string]any{"name": "Bar", "parent": nil}

	assert.NoError(t, RequireKeys("body", body, "name", "parent"))

	err := RequireKeys("body", body, "name", "role")
	requireTypedMessage(t, err, pkgerrors.CodeValidation, "Invalid request - missing keys.")
	assert.Contains(t, err.(*pkgerrors.Error).Unwrap().Error(), "role")
	assert.Contains(t, err.(*pkgerrors.Error).Unwrap().Error(), "body")
}

func TestDecodeRawBodyAndList(t *testing.T) {
	req := httptest.NewRequest("POST", "/fill/x", strings.NewReader(`{"a":1}`))
	body, err := DecodeRawBody(req)
	require.NoError(t, err)
	assert.Equal(t, float64(1), body["a"])

	req = httptest.NewRequest("PUT", "/api/rotas/x", strings.NewReader(`[{"name":"v"}]`))
	list, err := DecodeRawList(req)
	require.NoError(t, err)
	require.Len(t, list, 1)

	req = httptest.NewRequest("POST", "/fill/x", strings.NewReader(`[1,2]`))
	_, err = DecodeRawBody(req)
	requireTypedMessage(t, err, pkgerrors.CodeValidation, "Failed to read JSON in request.")
}

func TestParseUUID(t *testing.T) {
	id, err := ParseUUID(" 1b4e28ba-2fa1-11d2-883f-0016d3cca427 ", "ID given is not a valid UUID.")
	require.NoError(t, err)
	assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", id.String())

	_, err = ParseUUID("nope", "Invalid ID.")
	requireTypedMessage(t, err, pkgerrors.CodeValidation, "Invalid ID.")
}

func TestParseQueryUUID(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/roles?id=not-a-uuid", nil)
	_, err := ParseQueryUUID(req, "id", "ID given is not a valid UUID.")
	requireTypedMessage(t, err, pkgerrors.CodeValidation, "ID given is not a valid UUID.")

	req = httptest.NewRequest("GET", "/api/roles", nil)
	_, err = ParseQueryUUID(req, "id", "Invalid ID.")
	requireTypedMessage(t, err, pkgerrors.CodeValidation, "Invalid ID.")
}
