package store

import (
	"context"
	"sync"

	"github.com/eventbooker/webclient/internal/entity"
	"github.com/eventbooker/webclient/internal/service"

	"github.com/sirupsen/logrus"
)

// Events is the in-memory mirror of one session's event list. It is the
// single writer of its state: every mutation performs the API call first
// and only then patches the list by id, so a failed call keeps the prior
// state. The mirror is eventually stale by design; cross-session
// consistency is best effort only.
type Events struct {
	mu     sync.Mutex
	svc    service.EventService
	events []*entity.Event
	loaded bool
}

func NewEvents(svc service.EventService) *Events {
	return &Events{svc: svc}
}

// List returns the cached event list, fetching it on first use. Refresh
// forces a re-fetch.
func (s *Events) List(ctx context.Context, token string) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.fetchLocked(ctx, token); err != nil {
			return nil, err
		}
	}
	return s.snapshotLocked(), nil
}

func (s *Events) Refresh(ctx context.Context, token string) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fetchLocked(ctx, token); err != nil {
		return nil, err
	}
	return s.snapshotLocked(), nil
}

// Search asks the API for events matching the query. Results are not
// cached: the mirror keeps the full list, a search is a throwaway view of
// it. An empty query falls back to the cached list.
func (s *Events) Search(ctx context.Context, token, query string) ([]*entity.Event, error) {
	if query == "" {
		return s.List(ctx, token)
	}
	return s.svc.GetEvents(ctx, token, &service.ListParams{Search: query})
}

func (s *Events) fetchLocked(ctx context.Context, token string) error {
	events, err := s.svc.GetEvents(ctx, token, nil)
	if err != nil {
		logrus.Errorf("failed to load events: %v", err)
		return err
	}
	s.events = events
	s.loaded = true
	return nil
}

// Get returns the cached copy of one event, if present.
func (s *Events) Get(id string) (*entity.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// GetByID fetches a single event from the API without touching the cache,
// used by the edit form to load fresh field values.
func (s *Events) GetByID(ctx context.Context, token, id string) (*entity.Event, error) {
	return s.svc.GetEventByID(ctx, token, id)
}

// Create posts the new event and appends the server's copy to the list.
func (s *Events) Create(ctx context.Context, token string, req *service.CreateEventRequest) (*entity.Event, error) {
	event, err := s.svc.CreateEvent(ctx, token, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()

	return event, nil
}

// Update replaces the cached entry with the server's copy.
func (s *Events) Update(ctx context.Context, token, id string, req *service.UpdateEventRequest) (*entity.Event, error) {
	event, err := s.svc.UpdateEvent(ctx, token, id, req)
	if err != nil {
		return nil, err
	}

	s.replace(event)
	return event, nil
}

func (s *Events) Delete(ctx context.Context, token, id string) error {
	if err := s.svc.DeleteEvent(ctx, token, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	return nil
}

// ToggleAttendance branches on the event's current IsBookedByUser flag to
// decide cancel-vs-reserve, then replaces that one entry with the server's
// fresh copy. Requires a signed-in user. Reserve is refused when no spots
// remain and the viewer holds no reservation.
func (s *Events) ToggleAttendance(ctx context.Context, token string, user *entity.User, id string) (*entity.Event, bool, error) {
	if user == nil {
		return nil, false, entity.ErrUnauthorized
	}

	current, ok := s.Get(id)
	if !ok {
		return nil, false, entity.ErrEventNotFound
	}

	var (
		event    *entity.Event
		reserved bool
		err      error
	)
	if current.IsBookedByUser {
		event, err = s.svc.CancelReservation(ctx, token, id)
	} else {
		if !current.CanReserve() {
			return nil, false, entity.ErrEventFull
		}
		event, err = s.svc.ReserveSpot(ctx, token, id)
		reserved = true
	}
	if err != nil {
		return nil, false, err
	}

	s.replace(event)
	return event, reserved, nil
}

func (s *Events) replace(event *entity.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.events {
		if e.ID == event.ID {
			s.events[i] = event
			return
		}
	}
}

func (s *Events) snapshotLocked() []*entity.Event {
	out := make([]*entity.Event, len(s.events))
	copy(out, s.events)
	return out
}
