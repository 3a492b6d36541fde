package booking

import (
	"context"
	"fmt"

	bookingRepo "stayloop/database/repository/booking"
	"stayloop/models"
	"stayloop/utils"

	"go.uber.org/zap"
)

// Cancel releases an ACCEPTED booking at the tenant's request. Cancellation
// of a still-PENDING request is a separate Withdraw action, not a variant of
// this one.
func (svc *DefaultLifecycleService) Cancel(ctx context.Context, bookingID, tenantID, tenantNote string) (*models.Booking, error) {
	b, err := svc.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.TenantID != tenantID {
		return nil, NewForbiddenError(fmt.Sprintf("actor %s is not the tenant of booking %s", tenantID, bookingID))
	}
	if b.Status != models.StatusAccepted {
		return nil, NewInvalidTransitionError(fmt.Sprintf("cannot cancel booking in status %s", b.Status))
	}

	now := svc.now()
	patch := bookingRepo.StatusPatch{
		Status:    models.StatusCancelled,
		UpdatedAt: now,
	}
	if tenantNote != "" {
		patch.TenantNote = &tenantNote
	}
	updated, err := svc.applyPatch(ctx, b, patch)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking cancelled",
		zap.String("bookingID", bookingID), zap.String("tenantID", tenantID))
	svc.emit(ctx, updated, models.StatusAccepted, models.RoleTenant)
	return updated, nil
}

// Withdraw lets a tenant pull back a request the host has not reviewed yet.
func (svc *DefaultLifecycleService) Withdraw(ctx context.Context, bookingID, tenantID string) (*models.Booking, error) {
	b, err := svc.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.TenantID != tenantID {
		return nil, NewForbiddenError(fmt.Sprintf("actor %s is not the tenant of booking %s", tenantID, bookingID))
	}
	if b.Status != models.StatusPending {
		return nil, NewInvalidTransitionError(fmt.Sprintf("cannot withdraw booking in status %s", b.Status))
	}

	now := svc.now()
	updated, err := svc.applyPatch(ctx, b, bookingRepo.StatusPatch{
		Status:    models.StatusCancelled,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking withdrawn",
		zap.String("bookingID", bookingID), zap.String("tenantID", tenantID))
	svc.emit(ctx, updated, models.StatusPending, models.RoleTenant)
	return updated, nil
}
