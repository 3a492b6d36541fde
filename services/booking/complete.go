package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "stayloop/database/repository/booking"
	"stayloop/models"
	"stayloop/utils"

	"go.uber.org/zap"
)

// Complete marks an ACCEPTED booking whose checkout date has passed as
// COMPLETED. Calling it on an already-COMPLETED booking is a no-op, so
// overlapping sweep runs are harmless.
func (svc *DefaultLifecycleService) Complete(ctx context.Context, bookingID string, now time.Time) (*models.Booking, error) {
	b, err := svc.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == models.StatusCompleted {
		return b, nil
	}
	if b.Status != models.StatusAccepted {
		return nil, NewInvalidTransitionError(fmt.Sprintf("cannot complete booking in status %s", b.Status))
	}
	if b.CheckoutDate.After(now) {
		return nil, NewInvalidTransitionError(fmt.Sprintf(
			"booking %s is not due until %s", bookingID, b.CheckoutDate.Format("2006-01-02")))
	}

	completedAt := now.UTC()
	updated, err := svc.applyPatch(ctx, b, bookingRepo.StatusPatch{
		Status:      models.StatusCompleted,
		CompletedAt: &completedAt,
		UpdatedAt:   completedAt,
	})
	if err != nil {
		return nil, err
	}

	svc.emit(ctx, updated, models.StatusAccepted, "system")
	return updated, nil
}

// CompleteDueBookings is the sweep entry point: it completes every ACCEPTED
// booking whose checkout date is at or before now. A booking that loses its
// row race to a concurrent transition is skipped; the next sweep re-evaluates
// whatever state won.
func (svc *DefaultLifecycleService) CompleteDueBookings(ctx context.Context, now time.Time) ([]models.Booking, error) {
	logger := utils.GetLogger()

	due, err := svc.Bookings.DueForCompletion(ctx, now)
	if err != nil {
		return nil, err
	}

	var completed []models.Booking
	for i := range due {
		updated, err := svc.Complete(ctx, due[i].ID, now)
		if err != nil {
			logger.Warn("sweep could not complete booking",
				zap.String("bookingID", due[i].ID), zap.Error(err))
			continue
		}
		completed = append(completed, *updated)
	}
	if len(completed) > 0 {
		logger.Info("completion sweep finished", zap.Int("completed", len(completed)))
	}
	return completed, nil
}
