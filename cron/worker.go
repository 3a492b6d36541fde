package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"stayloop/config"
	"stayloop/models"
	"stayloop/services/booking"
	"stayloop/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// TypeCompletionSweep is the periodic task that drives the ACCEPTED →
// COMPLETED transition once checkout has passed.
const TypeCompletionSweep = "booking:completion_sweep"

// BookingEventsChannel is the Redis pub/sub channel the external
// conversation/notification system subscribes to.
const BookingEventsChannel = "events:booking"

// InitWorker runs the async worker and sweep scheduler in background.
func InitWorker(lifecycle booking.LifecycleService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeBookingTransition, handleTransitionTask())
	mux.HandleFunc(TypeCompletionSweep, handleSweepTask(lifecycle))

	// Start Redis health monitor
	go monitorRedisConnection()

	go runScheduler(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// runScheduler enqueues the completion sweep on the configured cron spec.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, nil)
	spec := config.AppConfig.CompletionSweepSpec
	if spec == "" {
		spec = "@every 1h"
	}
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeCompletionSweep, nil)); err != nil {
		log.Printf("[Worker] Failed to register completion sweep: %v", err)
		return
	}
	if err := scheduler.Run(); err != nil {
		log.Printf("[Worker] Scheduler stopped: %v", err)
	}
}

// handleTransitionTask fans a transition event out to the pub/sub channel
// consumed by the external conversation/notification system. Delivery is
// best-effort by contract.
func handleTransitionTask() asynq.HandlerFunc {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	return func(ctx context.Context, task *asynq.Task) error {
		var event models.TransitionEvent
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			log.Printf("[TransitionHandler] Invalid payload: %v", err)
			return err
		}

		log.Printf("[TransitionHandler] booking %s: %s -> %s (by %s)",
			event.BookingID, event.FromStatus, event.ToStatus, event.ActorRole)

		if err := client.Publish(ctx, BookingEventsChannel, task.Payload()).Err(); err != nil {
			log.Printf("[TransitionHandler] Failed to publish event: %v", err)
			return err
		}
		return nil
	}
}

func handleSweepTask(lifecycle booking.LifecycleService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		completed, err := lifecycle.CompleteDueBookings(ctx, time.Now().UTC())
		if err != nil {
			log.Printf("[SweepHandler] Sweep failed: %v", err)
			return err
		}
		if len(completed) > 0 {
			log.Printf("[SweepHandler] Completed %d bookings", len(completed))
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[Worker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
