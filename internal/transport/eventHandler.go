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

type EventHandler struct {
	sessions *session.Manager
	registry *store.Registry
}

func NewEventHandler(sessions *session.Manager, registry *store.Registry) *EventHandler {
	return &EventHandler{sessions: sessions, registry: registry}
}

func (h *EventHandler) List(c *gin.Context) {
	sess := h.sessions.FromRequest(c)
	events := h.registry.ForToken(sess.Token())

	search := c.Query("search")
	list, err := events.Search(c.Request.Context(), sess.Token(), search)
	if err != nil {
		if h.invalidateOnAuthError(c, sess, err) {
			return
		}
		c.HTML(http.StatusOK, "events.html", gin.H{
			"User":   middleware.CurrentUser(c),
			"Events": []*entity.Event{},
			"Search": search,
			"Flash":  &Flash{Kind: "error", Message: "Failed to load events. Please try again later."},
		})
		return
	}

	c.HTML(http.StatusOK, "events.html", gin.H{
		"User":   middleware.CurrentUser(c),
		"Events": list,
		"Search": search,
		"Flash":  takeFlash(c),
	})
}

func (h *EventHandler) ShowCreate(c *gin.Context) {
	c.HTML(http.StatusOK, "event_form.html", gin.H{
		"User":   middleware.CurrentUser(c),
		"Mode":   "create",
		"Form":   &service.CreateEventRequest{TotalSpots: 100},
		"Errors": noErrors,
	})
}

func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "event_form.html", gin.H{
			"User":   middleware.CurrentUser(c),
			"Mode":   "create",
			"Form":   &req,
			"Errors": formErrors(err),
		})
		return
	}

	sess := h.sessions.FromRequest(c)
	events := h.registry.ForToken(sess.Token())

	if _, err := events.Create(c.Request.Context(), sess.Token(), &req); err != nil {
		if h.invalidateOnAuthError(c, sess, err) {
			return
		}
		c.HTML(http.StatusBadGateway, "event_form.html", gin.H{
			"User":   middleware.CurrentUser(c),
			"Mode":   "create",
			"Form":   &req,
			"Flash":  &Flash{Kind: "error", Message: apiMessage(err, "Failed to create event. Please try again.")},
			"Errors": noErrors,
		})
		return
	}

	setFlash(c, h.sessions, "success", "The event has been created successfully.")
	c.Redirect(http.StatusFound, "/events")
}

func (h *EventHandler) ShowEdit(c *gin.Context) {
	sess := h.sessions.FromRequest(c)
	events := h.registry.ForToken(sess.Token())

	event, err := events.GetByID(c.Request.Context(), sess.Token(), c.Param("id"))
	if err != nil {
		if h.invalidateOnAuthError(c, sess, err) {
			return
		}
		setFlash(c, h.sessions, "error", "Failed to load event details")
		c.Redirect(http.StatusFound, "/events")
		return
	}

	c.HTML(http.StatusOK, "event_form.html", gin.H{
		"User":   middleware.CurrentUser(c),
		"Mode":   "edit",
		"ID":     event.ID,
		"Errors": noErrors,
		"Form": &service.CreateEventRequest{
			Title:       event.Title,
			Description: event.Description,
			Image:       event.Image,
			TotalSpots:  event.TotalSpots,
		},
	})
}

func (h *EventHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req service.CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "event_form.html", gin.H{
			"User":   middleware.CurrentUser(c),
			"Mode":   "edit",
			"ID":     id,
			"Form":   &req,
			"Errors": formErrors(err),
		})
		return
	}

	update := &service.UpdateEventRequest{
		Title:       &req.Title,
		Description: &req.Description,
		Image:       &req.Image,
		TotalSpots:  &req.TotalSpots,
	}

	sess := h.sessions.FromRequest(c)
	events := h.registry.ForToken(sess.Token())

	if _, err := events.Update(c.Request.Context(), sess.Token(), id, update); err != nil {
		if h.invalidateOnAuthError(c, sess, err) {
			return
		}
		c.HTML(http.StatusBadGateway, "event_form.html", gin.H{
			"User":   middleware.CurrentUser(c),
			"Mode":   "edit",
			"ID":     id,
			"Form":   &req,
			"Flash":  &Flash{Kind: "error", Message: apiMessage(err, "Failed to update event. Please try again.")},
			"Errors": noErrors,
		})
		return
	}

	setFlash(c, h.sessions, "success", "The event has been updated successfully.")
	c.Redirect(http.StatusFound, "/events")
}

func (h *EventHandler) Delete(c *gin.Context) {
	sess := h.sessions.FromRequest(c)
	events := h.registry.ForToken(sess.Token())

	if err := events.Delete(c.Request.Context(), sess.Token(), c.Param("id")); err != nil {
		if h.invalidateOnAuthError(c, sess, err) {
			return
		}
		setFlash(c, h.sessions, "error", apiMessage(err, "Failed to delete event. Please try again."))
		c.Redirect(http.StatusFound, "/events")
		return
	}

	setFlash(c, h.sessions, "success", "The event has been deleted successfully.")
	c.Redirect(http.StatusFound, "/events")
}

// Toggle flips the viewer's reservation on one event: cancel when booked,
// reserve otherwise.
func (h *EventHandler) Toggle(c *gin.Context) {
	sess := h.sessions.FromRequest(c)
	events := h.registry.ForToken(sess.Token())
	user := middleware.CurrentUser(c)

	_, reserved, err := events.ToggleAttendance(c.Request.Context(), sess.Token(), user, c.Param("id"))
	if err != nil {
		if h.invalidateOnAuthError(c, sess, err) {
			return
		}
		setFlash(c, h.sessions, "error", toggleErrorMessage(err))
		c.Redirect(http.StatusFound, "/events")
		return
	}

	if reserved {
		setFlash(c, h.sessions, "success", "You have successfully reserved a spot for this event.")
	} else {
		setFlash(c, h.sessions, "success", "Your reservation has been cancelled successfully.")
	}
	c.Redirect(http.StatusFound, "/events")
}

func toggleErrorMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrEventFull):
		return "Sorry, this event is fully booked."
	case errors.Is(err, entity.ErrNoBooking):
		return entity.ErrNoBooking.Error()
	case errors.Is(err, entity.ErrEventNotFound):
		return "Event not found"
	default:
		return apiMessage(err, "Failed to update reservation. Please try again.")
	}
}

// invalidateOnAuthError implements the global 401 invalidation: the session
// cookies go away, the session's cache is dropped and the browser lands on
// /login. The stale token cannot be used again because nothing holds it
// outside the jar.
func (h *EventHandler) invalidateOnAuthError(c *gin.Context, sess session.Store, err error) bool {
	if !errors.Is(err, entity.ErrUnauthorized) {
		return false
	}

	h.registry.Drop(sess.Token())
	sess.ClearSession()
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
	return true
}
