package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "session_user"

// WithUser resolves the session cookie on every request and, when valid,
// stores the record in the gin context. Anonymous requests pass through;
// gating is RequireLogin's job.
func WithUser(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err == nil && token != "" {
			rec, err := store.Get(c.Request.Context(), token)
			if err == nil {
				c.Set(ctxUserKey, rec)
			} else if !errors.Is(err, ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "session lookup: " + err.Error()})
				return
			}
		}
		c.Next()
	}
}

// RequireLogin redirects unauthenticated visitors to the public entry
// point. The surface is browser-facing, so a redirect beats a 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the logged-in principal, or nil when anonymous.
func CurrentUser(c *gin.Context) *Record {
	if v, ok := c.Get(ctxUserKey); ok {
		if rec, ok := v.(*Record); ok {
			return rec
		}
	}
	return nil
}
