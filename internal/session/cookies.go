package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	TokenCookie = "auth_token"
	UserCookie  = "auth_user"
	FlashCookie = "flash"

	DefaultTTLDays = 7
	cookiePath     = "/"
)

// SetCookie writes a SameSite=Strict cookie expiring in the given number
// of days. Values are URL-encoded by gin on write and decoded on read.
func SetCookie(c *gin.Context, name, value string, days int, secure bool) {
	if days == 0 {
		days = DefaultTTLDays
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, days*86400, cookiePath, "", secure, true)
}

// GetCookie returns the decoded cookie value, or ok=false when absent.
func GetCookie(c *gin.Context, name string) (string, bool) {
	value, err := c.Cookie(name)
	if err != nil {
		return "", false
	}
	return value, true
}

// DeleteCookie expires the cookie immediately.
func DeleteCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, "", -1, cookiePath, "", false, true)
}
