package transport

import (
	"errors"
	"net/http"

	"github.com/eventbooker/webclient/internal/entity"
	"github.com/eventbooker/webclient/internal/service"
	"github.com/eventbooker/webclient/internal/session"
	"github.com/eventbooker/webclient/internal/store"
	"github.com/eventbooker/webclient/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookings service.BookingService
	sessions *session.Manager
	registry *store.Registry
}

func NewBookingHandler(bookings service.BookingService, sessions *session.Manager, registry *store.Registry) *BookingHandler {
	return &BookingHandler{bookings: bookings, sessions: sessions, registry: registry}
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	sess := h.sessions.FromRequest(c)

	list, err := h.bookings.GetMyBookings(c.Request.Context(), sess.Token())
	if err != nil {
		if errors.Is(err, entity.ErrUnauthorized) {
			h.registry.Drop(sess.Token())
			sess.ClearSession()
			c.Redirect(http.StatusFound, "/login")
			return
		}
		c.HTML(http.StatusOK, "bookings.html", gin.H{
			"User":     middleware.CurrentUser(c),
			"Bookings": []*entity.Booking{},
			"Flash":    &Flash{Kind: "error", Message: "Failed to load bookings. Please try again later."},
		})
		return
	}

	c.HTML(http.StatusOK, "bookings.html", gin.H{
		"User":     middleware.CurrentUser(c),
		"Bookings": list,
		"Flash":    takeFlash(c),
	})
}
