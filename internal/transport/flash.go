package transport

import (
	"strings"

	"github.com/eventbooker/webclient/internal/session"

	"github.com/gin-gonic/gin"
)

// Flash is a one-shot notification carried across a redirect in a cookie,
// the server-rendered stand-in for the SPA's transient toasts.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// setFlash persists a one-shot notification; the cookie follows the same
// Secure policy as the session cookies.
func setFlash(c *gin.Context, sessions *session.Manager, kind, message string) {
	session.SetCookie(c, session.FlashCookie, kind+"|"+message, 1, sessions.Secure())
}

// takeFlash reads and clears the flash cookie.
func takeFlash(c *gin.Context) *Flash {
	raw, ok := session.GetCookie(c, session.FlashCookie)
	if !ok || raw == "" {
		return nil
	}
	session.DeleteCookie(c, session.FlashCookie)

	kind, message, found := strings.Cut(raw, "|")
	if !found {
		return &Flash{Kind: "success", Message: raw}
	}
	return &Flash{Kind: kind, Message: message}
}
