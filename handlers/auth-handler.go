package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/syedmehedi34/scsi-job-task-server/logging"
	"github.com/syedmehedi34/scsi-job-task-server/services"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "token"

// AuthHandler mints and clears the session cookie.
type AuthHandler struct {
	jwtService *services.JWTService
	production bool
}

func NewAuthHandler(jwtService *services.JWTService, production bool) *AuthHandler {
	return &AuthHandler{jwtService: jwtService, production: production}
}

// IssueToken signs the posted claim object into a session token and sets it
// as an HTTP-only cookie.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var claims map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	email, _ := claims["email"].(string)
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	token, err := h.jwtService.GenerateToken(claims)
	if err != nil {
		logging.Logger.Errorf("Event ID: TOKEN_SIGN_FAILED, Description: Failed to sign session token for %s: %v", email, err)
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, 0))
	logging.Logger.Infof("Event ID: TOKEN_ISSUED, Description: Session token issued for %s", email)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout clears the session cookie. No token validation happens first: the
// route is safe to call with an expired or absent session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.sessionCookie("", -1)
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// sessionCookie builds the token cookie. Production deployments serve the
// frontend cross-site over HTTPS, so the cookie is Secure with SameSite=None
// there and Strict without Secure in development.
func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	}
	if h.production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
