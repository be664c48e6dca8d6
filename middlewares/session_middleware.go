package middlewares

import (
	"github.com/gin-gonic/gin"

	"diettracker/models"
	"diettracker/services"
)

const (
	SessionCookie  = "session_id"
	LastUserCookie = "last_user"

	// The last-user preference survives for a year.
	lastUserMaxAge = 365 * 24 * 60 * 60

	sessionKey = "session"
)

// SessionMiddleware attaches the caller's SessionState to the gin context,
// creating one on first contact. The last_user cookie only matters at
// creation time, when it seeds the active user.
func SessionMiddleware(mgr *services.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		lastUser, _ := c.Cookie(LastUserCookie)

		s, created := mgr.Resolve(id, lastUser)
		if created {
			// Session cookie, dies with the browser.
			c.SetCookie(SessionCookie, s.ID, 0, "/", "", false, true)
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// Session returns the SessionState the middleware attached.
func Session(c *gin.Context) *models.SessionState {
	return c.MustGet(sessionKey).(*models.SessionState)
}

// PersistLastUser writes the 1-year preference cookie on user switch.
func PersistLastUser(c *gin.Context, user string) {
	c.SetCookie(LastUserCookie, user, lastUserMaxAge, "/", "", false, false)
}
