package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")
	ErrEventFull     = errors.New("event is fully booked")

	// Booking errors
	ErrNoBooking = errors.New("no booking found for this event")

	// Session errors
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrSessionCorrupt = errors.New("persisted session is corrupt")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
