package service

import (
	"context"

	"github.com/eventbooker/webclient/internal/entity"
	"github.com/eventbooker/webclient/internal/session"
)

// AuthService owns login/register/logout against the remote API and the
// persisted session that results from them.
type AuthService interface {
	Login(ctx context.Context, sess session.Store, req *LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, sess session.Store, req *RegisterRequest) (*AuthResponse, error)
	Logout(sess session.Store)
}

// EventService translates between the API's wire shape and the UI shape.
// It is stateless and never caches.
type EventService interface {
	GetEvents(ctx context.Context, token string, params *ListParams) ([]*entity.Event, error)
	GetEventByID(ctx context.Context, token, id string) (*entity.Event, error)
	CreateEvent(ctx context.Context, token string, req *CreateEventRequest) (*entity.Event, error)
	UpdateEvent(ctx context.Context, token, id string, req *UpdateEventRequest) (*entity.Event, error)
	DeleteEvent(ctx context.Context, token, id string) error
	ReserveSpot(ctx context.Context, token, id string) (*entity.Event, error)
	CancelReservation(ctx context.Context, token, id string) (*entity.Event, error)
}

// BookingService exposes the raw booking endpoints. Booking identity is
// carried on the Event entity (BookingID); there is no client-side index.
type BookingService interface {
	ReserveSpot(ctx context.Context, token, eventID string) (*entity.Booking, error)
	CancelReservation(ctx context.Context, token, bookingID string) error
	GetMyBookings(ctx context.Context, token string) ([]*entity.Booking, error)
}
