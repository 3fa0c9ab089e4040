package service

import (
	"context"
	"fmt"

	"github.com/eventbooker/webclient/internal/api"
	"github.com/eventbooker/webclient/internal/entity"
)

type bookingService struct {
	client *api.Client
}

func NewBookingService(client *api.Client) BookingService {
	return &bookingService{client: client}
}

func (s *bookingService) ReserveSpot(ctx context.Context, token, eventID string) (*entity.Booking, error) {
	body := map[string]string{"event_id": eventID}

	var booking entity.Booking
	if err := s.client.Post(ctx, token, "/bookings", body, &booking); err != nil {
		return nil, fmt.Errorf("failed to reserve spot for event %s: %w", eventID, err)
	}
	return &booking, nil
}

func (s *bookingService) CancelReservation(ctx context.Context, token, bookingID string) error {
	if bookingID == "" {
		return entity.ErrNoBooking
	}
	if err := s.client.Delete(ctx, token, "/bookings/"+bookingID); err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
	}
	return nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, token string) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	if err := s.client.Get(ctx, token, "/bookings/my-bookings", nil, &bookings); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}
