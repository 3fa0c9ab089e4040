package entity

// Booking relates one user to one event per active reservation.
type Booking struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	EventID   string `json:"event_id"`
	CreatedAt string `json:"created_at"`
}
