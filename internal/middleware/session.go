package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Session cookie and context keys
const (
	SessionCookie = "nutriscope_session"
	SessionKey    = "session_id"
)

const sessionMaxAge = 24 * 60 * 60

// Session makes sure every request carries a session id, issuing a cookie on
// the first visit. The id is stored under SessionKey.
func Session(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		// Refreshed on every request so an active session never expires
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, sessionMaxAge, "/", "", secure, true)
		c.Set(SessionKey, id)
		c.Next()
	}
}

// SessionID returns the request's session id
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
