package notification

import (
	"context"

	"stayloop/models"
)

// Publisher hands transition events to the downstream notification and
// conversation systems. Implementations must be fire-and-forget from the
// engine's perspective: a publish failure never rolls back a transition.
type Publisher interface {
	PublishTransition(ctx context.Context, event models.TransitionEvent) error
}
