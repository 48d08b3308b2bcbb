package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oliverbanks/rotaboard-backend/pkg/auth/session"
	"github.com/oliverbanks/rotaboard-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	ownerID string
	err     error
}

func (s stubResolver) Resolve(ctx context.Context, sessionID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.ownerID, nil
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{CookieName: "rotaboard_session"}
}

func runAuth(t *testing.T, resolver session.Resolver, cookie *http.Cookie) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var captured string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = OwnerIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/roles", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	Auth(testSessionConfig(), resolver, nil)(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthMissingCookie(t *testing.T) {
	rec, _ := runAuth(t, stubResolver{}, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not logged in.", body["message"])
}

func TestAuthUnknownSession(t *testing.T) {
	rec, _ := runAuth(t, stubResolver{err: session.ErrNoSession}, &http.Cookie{Name: "rotaboard_session", Value: "stale"})

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not logged in.", body["message"])
}

func TestAuthStoreFailure(t *testing.T) {
	rec, _ := runAuth(t, stubResolver{err: errors.New("redis down")}, &http.Cookie{Name: "rotaboard_session", Value: "abc"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthSeedsOwnerID(t *testing.T) {
	rec, ownerID := runAuth(t, stubResolver{ownerID: "owner-1"}, &http.Cookie{Name: "rotaboard_session", Value: "abc"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "owner-1", ownerID)
}
