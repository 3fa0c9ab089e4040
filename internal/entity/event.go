package entity

// Event is the UI-side shape of an event. OccupiedSpots mirrors the wire
// field booked_spots; IsBookedByUser and BookingID are per-viewer fields
// the API fills in for the authenticated user.
type Event struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Image          string `json:"image"`
	TotalSpots     int    `json:"totalSpots"`
	OccupiedSpots  int    `json:"occupiedSpots"`
	CreatedBy      string `json:"createdBy"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
	IsBookedByUser bool   `json:"isBookedByUser,omitempty"`
	BookingID      string `json:"bookingId,omitempty"`
}

// AvailableSpots is always computed, never persisted. The server enforces
// occupied <= total; a stale read can still produce a negative value here.
func (e *Event) AvailableSpots() int {
	return e.TotalSpots - e.OccupiedSpots
}

// CanReserve reports whether the viewer may reserve a spot: either spots
// remain, or the viewer already holds a reservation (and may cancel it).
func (e *Event) CanReserve() bool {
	return e.IsBookedByUser || e.AvailableSpots() > 0
}
