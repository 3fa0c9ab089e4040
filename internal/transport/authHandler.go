package transport

import (
	"errors"
	"net/http"
	"strings"

	"github.com/eventbooker/webclient/internal/api"
	"github.com/eventbooker/webclient/internal/service"
	"github.com/eventbooker/webclient/internal/session"
	"github.com/eventbooker/webclient/internal/store"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth     service.AuthService
	sessions *session.Manager
	registry *store.Registry
}

func NewAuthHandler(auth service.AuthService, sessions *session.Manager, registry *store.Registry) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, registry: registry}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	sess := h.sessions.FromRequest(c)
	if sess.IsAuthenticated() {
		c.Redirect(http.StatusFound, "/events")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"From":   c.Query("from"),
		"Flash":  takeFlash(c),
		"Errors": noErrors,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Errors": formErrors(err),
			"Email":  c.PostForm("email"),
			"From":   c.PostForm("from"),
		})
		return
	}

	sess := h.sessions.FromRequest(c)
	resp, err := h.auth.Login(c.Request.Context(), sess, &req)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Flash":  &Flash{Kind: "error", Message: apiMessage(err, "Invalid email or password")},
			"Email":  req.Email,
			"From":   c.PostForm("from"),
			"Errors": noErrors,
		})
		return
	}

	message := resp.Message
	if message == "" {
		message = "Welcome back!"
	}
	setFlash(c, h.sessions, "success", message)

	c.Redirect(http.StatusFound, safeRedirect(c.PostForm("from")))
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	sess := h.sessions.FromRequest(c)
	if sess.IsAuthenticated() {
		c.Redirect(http.StatusFound, "/events")
		return
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"Flash":  takeFlash(c),
		"Errors": noErrors,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Errors": formErrors(err),
			"Name":   c.PostForm("name"),
			"Email":  c.PostForm("email"),
		})
		return
	}

	sess := h.sessions.FromRequest(c)
	resp, err := h.auth.Register(c.Request.Context(), sess, &req)
	if err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Flash":  &Flash{Kind: "error", Message: apiMessage(err, "Error creating account")},
			"Name":   req.FullName,
			"Email":  req.Email,
			"Errors": noErrors,
		})
		return
	}

	message := resp.Message
	if message == "" {
		message = "Welcome to Event Booking App!"
	}
	setFlash(c, h.sessions, "success", message)

	c.Redirect(http.StatusFound, "/events")
}

// Logout drops the session cache, clears cookies and always lands on
// /login, whatever page the request came from.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := h.sessions.FromRequest(c)

	h.registry.Drop(sess.Token())
	h.auth.Logout(sess)

	setFlash(c, h.sessions, "success", "You have been logged out successfully")
	c.Redirect(http.StatusFound, "/login")
}

// apiMessage surfaces the server-provided message when one exists.
func apiMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// safeRedirect keeps the post-login redirect on-site.
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/events"
	}
	return target
}
