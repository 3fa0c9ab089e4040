package middleware

import (
	"net/http"
	"net/url"

	"github.com/eventbooker/webclient/internal/entity"
	"github.com/eventbooker/webclient/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	ContextUser = "currentUser"

	loginPath  = "/login"
	eventsPath = "/events"
)

// RequireAuth is the route guard for protected pages. Session hydration is
// synchronous (one cookie read), evaluated per request in order: a token
// cookie whose persisted user cannot be read clears the session and goes
// back to login; a missing token goes to login; otherwise the user lands in
// the request context. The originally requested path rides along as "from"
// for the post-login redirect.
func RequireAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.FromRequest(c)

		if !sess.IsAuthenticated() {
			redirectToLogin(c)
			return
		}

		user, ok := sess.CurrentUser()
		if !ok {
			logrus.WithField("path", c.Request.URL.Path).Warn("token cookie present but session invalid, clearing")
			sess.ClearSession()
			redirectToLogin(c)
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// RequireAdmin gates admin-only pages; non-admins fall back to the events
// list rather than login.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if !user.IsAdmin() {
			c.Redirect(http.StatusFound, eventsPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil on
// public routes.
func CurrentUser(c *gin.Context) *entity.User {
	value, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := value.(*entity.User)
	return user
}

func redirectToLogin(c *gin.Context) {
	q := url.Values{}
	q.Set("from", c.Request.URL.Path)
	c.Redirect(http.StatusFound, loginPath+"?"+q.Encode())
	c.Abort()
}
