package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"stayloop/models"

	"github.com/hibiken/asynq"
)

// TypeBookingTransition is the task type for booking transition events.
const TypeBookingTransition = "booking:transition"

// AsynqPublisher enqueues transition events onto the Redis-backed task queue.
// The worker in cron/ fans them out to the external conversation and
// notification consumers.
type AsynqPublisher struct {
	Client *asynq.Client
}

func NewAsynqPublisher(client *asynq.Client) *AsynqPublisher {
	return &AsynqPublisher{Client: client}
}

func (p *AsynqPublisher) PublishTransition(ctx context.Context, event models.TransitionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal transition event: %w", err)
	}
	task := asynq.NewTask(TypeBookingTransition, payload)
	if _, err := p.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue transition event: %w", err)
	}
	return nil
}
