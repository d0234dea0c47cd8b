package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event actions emitted on booking lifecycle changes.
const (
	EventActionCreated   = "created"
	EventActionCancelled = "cancelled"
)

// Event is the booking lifecycle notification fanned out to the kafka topic
// and connected websocket dashboards after a successful create or cancel.
type Event struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	At          time.Time `json:"at"`
}

// NewEvent builds a lifecycle event for a projected booking.
func NewEvent(action string, booking *Booking) Event {
	event := Event{
		ID:     uuid.NewString(),
		Action: action,
		At:     time.Now().UTC(),
	}
	if booking != nil {
		event.OrderNumber = booking.ID
		event.Status = string(booking.Status)
	}
	return event
}
