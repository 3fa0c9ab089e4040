package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventbooker/webclient/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

// apiRecorder is a scripted fake of the booking API.
type apiRecorder struct {
	requests []recordedRequest
	handler  func(r *http.Request) (int, string)
}

func (a *apiRecorder) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	a.requests = append(a.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})

	status, resp := a.handler(r)
	w.WriteHeader(status)
	w.Write([]byte(resp))
}

const wireEvent = `{
	"id": "e1",
	"title": "Concert",
	"description": "A live music event",
	"image_url": "https://x/y.jpg",
	"total_spots": 50,
	"booked_spots": %d,
	"created_by": "u9",
	"created_at": "2026-08-01T10:00:00Z",
	"updated_at": "2026-08-02T10:00:00Z",
	"is_booked_by_user": %t,
	"booking_id": "%s"
}`

func eventJSON(bookedSpots int, isBooked bool, bookingID string) string {
	return fmt.Sprintf(wireEvent, bookedSpots, isBooked, bookingID)
}

func TestGetEventsTranslatesWireFields(t *testing.T) {
	rec := &apiRecorder{handler: func(r *http.Request) (int, string) {
		return http.StatusOK, "[" + eventJSON(12, true, "b7") + "]"
	}}
	srv := httptest.NewServer(http.HandlerFunc(rec.serve))
	defer srv.Close()

	events, err := NewEventService(newAPIClient(srv)).GetEvents(context.Background(), "tok", nil)
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "https://x/y.jpg", e.Image)
	assert.Equal(t, 50, e.TotalSpots)
	assert.Equal(t, 12, e.OccupiedSpots)
	assert.Equal(t, 38, e.AvailableSpots())
	assert.True(t, e.IsBookedByUser)
	assert.Equal(t, "b7", e.BookingID)
}

func TestCreateEventWireShape(t *testing.T) {
	rec := &apiRecorder{handler: func(r *http.Request) (int, string) {
		return http.StatusCreated, eventJSON(0, false, "")
	}}
	srv := httptest.NewServer(http.HandlerFunc(rec.serve))
	defer srv.Close()

	event, err := NewEventService(newAPIClient(srv)).CreateEvent(context.Background(), "tok", &CreateEventRequest{
		Title:       "Concert",
		Description: "A live music event",
		Image:       "https://x/y.jpg",
		TotalSpots:  50,
	})
	require.NoError(t, err)

	// exactly one POST to /events, snake_case wire names
	require.Len(t, rec.requests, 1)
	assert.Equal(t, http.MethodPost, rec.requests[0].Method)
	assert.Equal(t, "/events", rec.requests[0].Path)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(rec.requests[0].Body), &body))
	assert.Equal(t, float64(50), body["total_spots"])
	assert.Equal(t, "https://x/y.jpg", body["image_url"])
	assert.NotContains(t, body, "image")
	assert.NotContains(t, body, "totalSpots")

	assert.Equal(t, 0, event.OccupiedSpots)
}

func TestReserveSpotIsTwoCalls(t *testing.T) {
	rec := &apiRecorder{handler: func(r *http.Request) (int, string) {
		if r.URL.Path == "/bookings" {
			return http.StatusCreated, `{"id":"b1","user_id":"u1","event_id":"e1"}`
		}
		return http.StatusOK, eventJSON(13, true, "b1")
	}}
	srv := httptest.NewServer(http.HandlerFunc(rec.serve))
	defer srv.Close()

	event, err := NewEventService(newAPIClient(srv)).ReserveSpot(context.Background(), "tok", "e1")
	require.NoError(t, err)

	require.Len(t, rec.requests, 2)
	assert.Equal(t, http.MethodPost, rec.requests[0].Method)
	assert.Equal(t, "/bookings", rec.requests[0].Path)
	assert.JSONEq(t, `{"event_id":"e1"}`, rec.requests[0].Body)
	assert.Equal(t, http.MethodGet, rec.requests[1].Method)
	assert.Equal(t, "/events/e1", rec.requests[1].Path)

	assert.True(t, event.IsBookedByUser)
	assert.Equal(t, "b1", event.BookingID)
}

func TestCancelReservationResolvesBookingFromEvent(t *testing.T) {
	var rec *apiRecorder
	rec = &apiRecorder{handler: func(r *http.Request) (int, string) {
		if r.Method == http.MethodDelete {
			return http.StatusNoContent, ""
		}
		if len(rec.requests) > 1 {
			return http.StatusOK, eventJSON(12, false, "")
		}
		return http.StatusOK, eventJSON(13, true, "b1")
	}}
	srv := httptest.NewServer(http.HandlerFunc(rec.serve))
	defer srv.Close()

	event, err := NewEventService(newAPIClient(srv)).CancelReservation(context.Background(), "tok", "e1")
	require.NoError(t, err)

	require.Len(t, rec.requests, 3)
	assert.Equal(t, "/events/e1", rec.requests[0].Path)
	assert.Equal(t, http.MethodDelete, rec.requests[1].Method)
	assert.Equal(t, "/bookings/b1", rec.requests[1].Path)
	assert.Equal(t, "/events/e1", rec.requests[2].Path)

	assert.False(t, event.IsBookedByUser)
	assert.Equal(t, 12, event.OccupiedSpots)
}

func TestCancelReservationWithoutBooking(t *testing.T) {
	rec := &apiRecorder{handler: func(r *http.Request) (int, string) {
		return http.StatusOK, eventJSON(5, false, "")
	}}
	srv := httptest.NewServer(http.HandlerFunc(rec.serve))
	defer srv.Close()

	_, err := NewEventService(newAPIClient(srv)).CancelReservation(context.Background(), "tok", "e1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrNoBooking))

	// no DELETE was attempted
	for _, req := range rec.requests {
		assert.NotEqual(t, http.MethodDelete, req.Method)
	}
}

func TestUpdateEventPartialBody(t *testing.T) {
	rec := &apiRecorder{handler: func(r *http.Request) (int, string) {
		return http.StatusOK, eventJSON(0, false, "")
	}}
	srv := httptest.NewServer(http.HandlerFunc(rec.serve))
	defer srv.Close()

	title := "New title"
	_, err := NewEventService(newAPIClient(srv)).UpdateEvent(context.Background(), "tok", "e1", &UpdateEventRequest{Title: &title})
	require.NoError(t, err)

	require.Len(t, rec.requests, 1)
	assert.Equal(t, http.MethodPut, rec.requests[0].Method)
	assert.JSONEq(t, `{"title":"New title"}`, rec.requests[0].Body)
}
