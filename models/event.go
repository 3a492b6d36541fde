package models

import "time"

// TransitionEvent is the fire-and-forget payload handed to the notification
// and conversation systems after every successful transition. Delivery
// failure never rolls the transition back.
type TransitionEvent struct {
	BookingID  string    `json:"booking_id"`
	PropertyID string    `json:"property_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorRole  string    `json:"actor_role"`
	OccurredAt time.Time `json:"occurred_at"`
}
