package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const sessionCookieName = "regform_session"

// sessionID returns the browser's session id, issuing a new one when the
// cookie is missing or malformed. Each session has its own output log.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return id
}
