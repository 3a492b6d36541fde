package booking

import (
	"context"
	"fmt"

	bookingRepo "stayloop/database/repository/booking"
	"stayloop/models"
	"stayloop/utils"

	"go.uber.org/zap"
)

// Accept confirms a PENDING booking. First acceptance wins: the range is
// re-validated excluding the booking's own row under the property lock, so a
// second PENDING request for the same dates that was accepted first blocks
// this one.
func (svc *DefaultLifecycleService) Accept(ctx context.Context, bookingID, hostID, hostNote string) (*models.Booking, error) {
	b, err := svc.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.HostID != hostID {
		return nil, NewForbiddenError(fmt.Sprintf("actor %s is not the host of booking %s", hostID, bookingID))
	}
	if b.Status != models.StatusPending {
		return nil, NewInvalidTransitionError(fmt.Sprintf("cannot accept booking in status %s", b.Status))
	}

	unlock, err := svc.Locks.Lock(ctx, b.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire property lock: %w", err)
	}
	defer unlock()

	free, err := svc.Availability.IsRangeAvailableExcluding(ctx, b.PropertyID, b.CheckinDate, b.CheckoutDate, b.ID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, NewRangeUnavailableError(fmt.Sprintf(
			"range for booking %s is no longer available", bookingID))
	}

	now := svc.now()
	patch := bookingRepo.StatusPatch{
		Status:     models.StatusAccepted,
		AcceptedAt: &now,
		UpdatedAt:  now,
	}
	if hostNote != "" {
		patch.HostNote = &hostNote
	}
	updated, err := svc.applyPatch(ctx, b, patch)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking accepted",
		zap.String("bookingID", bookingID), zap.String("hostID", hostID))
	svc.emit(ctx, updated, models.StatusPending, models.RoleHost)
	return updated, nil
}

// Decline rejects a PENDING booking and frees its range immediately.
func (svc *DefaultLifecycleService) Decline(ctx context.Context, bookingID, hostID, hostNote string) (*models.Booking, error) {
	b, err := svc.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.HostID != hostID {
		return nil, NewForbiddenError(fmt.Sprintf("actor %s is not the host of booking %s", hostID, bookingID))
	}
	if b.Status != models.StatusPending {
		return nil, NewInvalidTransitionError(fmt.Sprintf("cannot decline booking in status %s", b.Status))
	}

	now := svc.now()
	patch := bookingRepo.StatusPatch{
		Status:     models.StatusDeclined,
		DeclinedAt: &now,
		UpdatedAt:  now,
	}
	if hostNote != "" {
		patch.HostNote = &hostNote
	}
	updated, err := svc.applyPatch(ctx, b, patch)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking declined",
		zap.String("bookingID", bookingID), zap.String("hostID", hostID))
	svc.emit(ctx, updated, models.StatusPending, models.RoleHost)
	return updated, nil
}
