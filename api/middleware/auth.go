package middleware

import (
	"errors"
	"net/http"

	"github.com/oliverbanks/rotaboard-backend/api/responses"
	"github.com/oliverbanks/rotaboard-backend/pkg/auth/session"
	"github.com/oliverbanks/rotaboard-backend/pkg/config"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/oliverbanks/rotaboard-backend/pkg/logger"
)

// Auth resolves the session cookie and seeds the request context with the
// owner id. Browser clients expect 403 with "Not logged in." on any /api
// path they hit without a live session.
func Auth(cfg config.SessionConfig, resolver session.Resolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in."))
				return
			}

			ownerID, err := resolver.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "Not logged in."))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve session"))
				return
			}

			ctx := WithOwnerID(r.Context(), ownerID)
			if logg != nil {
				ctx = logg.WithOwnerID(ctx, ownerID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
