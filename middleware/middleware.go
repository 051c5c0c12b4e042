package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/syedmehedi34/scsi-job-task-server/logging"
	"github.com/syedmehedi34/scsi-job-task-server/services"
)

// sessionCookieName matches handlers.SessionCookieName; the guard reads the
// cookie the auth handler sets.
const sessionCookieName = "token"

type contextKey string

// ClaimsContextKey is where the guard stores the decoded session claims.
const ClaimsContextKey contextKey = "sessionClaims"

// JWTAuthMiddleware rejects requests that do not carry a valid, unexpired
// session token in the cookie. Decoded claims are attached to the request
// context for downstream handlers.
func JWTAuthMiddleware(jwtService *services.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil {
				logging.Logger.Warnf("Event ID: AUTH_MISSING_COOKIE, Description: No session cookie on request to %s %s", r.Method, r.URL.Path)
				unauthorized(w)
				return
			}

			claims, err := jwtService.ValidateToken(cookie.Value)
			if err != nil {
				logging.Logger.Warnf("Event ID: AUTH_INVALID_TOKEN, Description: Invalid session token on request to %s %s: %v", r.Method, r.URL.Path, err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized access"})
}
