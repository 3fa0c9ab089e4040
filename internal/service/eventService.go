package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/eventbooker/webclient/internal/api"
	"github.com/eventbooker/webclient/internal/entity"
)

// CreateEventRequest carries the event form. The json tags are the API's
// wire names, the form tags and binding rules belong to the HTML form.
type CreateEventRequest struct {
	Title       string `json:"title" form:"title" binding:"required,min=3"`
	Description string `json:"description" form:"description" binding:"required,min=10"`
	Image       string `json:"image_url" form:"image" binding:"required,url"`
	TotalSpots  int    `json:"total_spots" form:"totalSpots" binding:"required,min=1"`
}

// UpdateEventRequest is a partial update; nil fields are left untouched
// server-side.
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image_url,omitempty"`
	TotalSpots  *int    `json:"total_spots,omitempty"`
}

// ListParams are passed through to GET /events unchanged.
type ListParams struct {
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder string
}

func (p *ListParams) query() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	return q
}

// eventResponse is the API's snake_case representation of an event.
type eventResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
	TotalSpots     int    `json:"total_spots"`
	BookedSpots    int    `json:"booked_spots"`
	CreatedBy      string `json:"created_by"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	IsBookedByUser bool   `json:"is_booked_by_user"`
	BookingID      string `json:"booking_id,omitempty"`
}

func (r *eventResponse) toEntity() *entity.Event {
	return &entity.Event{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Image:          r.ImageURL,
		TotalSpots:     r.TotalSpots,
		OccupiedSpots:  r.BookedSpots,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		IsBookedByUser: r.IsBookedByUser,
		BookingID:      r.BookingID,
	}
}

type eventService struct {
	client *api.Client
}

func NewEventService(client *api.Client) EventService {
	return &eventService{client: client}
}

func (s *eventService) GetEvents(ctx context.Context, token string, params *ListParams) ([]*entity.Event, error) {
	var resp []eventResponse
	if err := s.client.Get(ctx, token, "/events", params.query(), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	events := make([]*entity.Event, 0, len(resp))
	for i := range resp {
		events = append(events, resp[i].toEntity())
	}
	return events, nil
}

func (s *eventService) GetEventByID(ctx context.Context, token, id string) (*entity.Event, error) {
	var resp eventResponse
	if err := s.client.Get(ctx, token, "/events/"+id, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}
	return resp.toEntity(), nil
}

func (s *eventService) CreateEvent(ctx context.Context, token string, req *CreateEventRequest) (*entity.Event, error) {
	var resp eventResponse
	if err := s.client.Post(ctx, token, "/events", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return resp.toEntity(), nil
}

func (s *eventService) UpdateEvent(ctx context.Context, token, id string, req *UpdateEventRequest) (*entity.Event, error) {
	var resp eventResponse
	if err := s.client.Put(ctx, token, "/events/"+id, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return resp.toEntity(), nil
}

func (s *eventService) DeleteEvent(ctx context.Context, token, id string) error {
	if err := s.client.Delete(ctx, token, "/events/"+id); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}

// ReserveSpot creates the booking, then re-fetches the event for the fresh
// per-viewer fields. Two sequential calls: a failure in between leaves the
// caller's cached copy stale until the next fetch.
func (s *eventService) ReserveSpot(ctx context.Context, token, id string) (*entity.Event, error) {
	body := map[string]string{"event_id": id}
	if err := s.client.Post(ctx, token, "/bookings", body, nil); err != nil {
		return nil, fmt.Errorf("failed to reserve spot: %w", err)
	}

	return s.GetEventByID(ctx, token, id)
}

// CancelReservation resolves the booking id from the event itself; the
// Event.BookingID field is the only booking index the client keeps.
func (s *eventService) CancelReservation(ctx context.Context, token, id string) (*entity.Event, error) {
	event, err := s.GetEventByID(ctx, token, id)
	if err != nil {
		return nil, err
	}

	if !event.IsBookedByUser || event.BookingID == "" {
		return nil, entity.ErrNoBooking
	}

	if err := s.client.Delete(ctx, token, "/bookings/"+event.BookingID); err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	return s.GetEventByID(ctx, token, id)
}
