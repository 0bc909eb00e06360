package http

import (
	"context"
	"net/http"

	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/utils"
)

// auth is an HTTP middleware that enforces token-based authentication on
// the notify surface.
//
// It inspects the incoming "Authorization" header, extracts the bearer
// token, verifies it, and — on success — stores the authenticated identity
// in the request context under [utils.IdentityCtxKey] before delegating to
// the next handler. Unlike the websocket path, there is no anonymous
// degradation here: backend callers must authenticate.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		identity, err := h.verifier.Verify(tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during verifying token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.IdentityCtxKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects authenticated callers that do not hold the admin
// role. Must run after [Handler.auth].
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := utils.GetIdentityFromContext(r.Context())
		if !ok || !identity.IsAdmin() {
			logger.FromRequest(r).Warn().Str("user_id", identity.UserID).Msg("notify call without admin role")
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
