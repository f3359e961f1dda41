package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType тип события жизненного цикла бронирования
type EventType string

const (
	EventCreated       EventType = "created"
	EventStageAdvanced EventType = "stage_advanced"
	EventCanceled      EventType = "canceled"
)

// BookingEvent событие жизненного цикла, публикуемое в шину
type BookingEvent struct {
	BookingID  uuid.UUID `json:"bookingId"`
	ShopID     int64     `json:"shopId"`
	ClientID   int64     `json:"clientId"`
	Type       EventType `json:"type"`
	Stage      string    `json:"stage"`
	OccurredAt time.Time `json:"occurredAt"`
	ActorID    int64     `json:"actorId"`
}

// NewBookingEvent собирает событие по текущему состоянию бронирования
func NewBookingEvent(b *Booking, eventType EventType, actor Actor, at time.Time) BookingEvent {
	return BookingEvent{
		BookingID:  b.ID,
		ShopID:     b.ShopID,
		ClientID:   b.ClientID,
		Type:       eventType,
		Stage:      b.Stage.String(),
		OccurredAt: at,
		ActorID:    actor.AccountID,
	}
}
