package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"passport-extractor/internal/pkg/sessiontoken"
)

const (
	ContextSessionIDKey = "session_id"
	sessionCookieName   = "px_session"
)

// Session attaches an anonymous session id to every request. A missing or
// invalid cookie gets a fresh id and a newly signed cookie; history restarts
// with it, matching the ephemeral session model.
func Session(secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(sessionCookieName); err == nil && raw != "" {
			if claims, err := sessiontoken.Parse(secret, raw); err == nil {
				c.Set(ContextSessionIDKey, claims.SessionID)
				c.Next()
				return
			}
		}

		sessionID := uuid.New().String()
		signed, err := sessiontoken.Generate(secret, sessionID, ttl)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.SetCookie(sessionCookieName, signed, int(ttl.Seconds()), "/", "", false, true)
		c.Set(ContextSessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID reads the session id the middleware stored on the context.
func SessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextSessionIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
