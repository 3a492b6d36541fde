package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "stayloop/database/repository/booking"
	"stayloop/models"
	"stayloop/utils"

	"go.uber.org/zap"
)

// load fetches the booking row, translating store sentinels into the
// user-facing taxonomy.
func (svc *DefaultLifecycleService) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := svc.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, NewNotFoundError(fmt.Sprintf("booking %s does not exist", bookingID))
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// applyPatch performs the CAS write for a transition. A lost version race
// surfaces as ConflictError; the caller may retry only after re-reading state.
func (svc *DefaultLifecycleService) applyPatch(ctx context.Context, b *models.Booking, patch bookingRepo.StatusPatch) (*models.Booking, error) {
	updated, err := svc.Bookings.UpdateStatus(ctx, b.ID, b.Version, patch)
	if errors.Is(err, bookingRepo.ErrVersionConflict) {
		return nil, NewConflictError(fmt.Sprintf("booking %s was modified concurrently", b.ID))
	}
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, NewNotFoundError(fmt.Sprintf("booking %s does not exist", b.ID))
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// emit publishes the transition event and invalidates cached availability.
// Publishing is fire-and-forget: failures are logged, never propagated.
func (svc *DefaultLifecycleService) emit(ctx context.Context, b *models.Booking, fromStatus, actorRole string) {
	svc.Availability.Invalidate(ctx, b.PropertyID)

	if svc.Publisher == nil {
		return
	}
	event := models.TransitionEvent{
		BookingID:  b.ID,
		PropertyID: b.PropertyID,
		FromStatus: fromStatus,
		ToStatus:   b.Status,
		ActorRole:  actorRole,
		OccurredAt: svc.now(),
	}
	if err := svc.Publisher.PublishTransition(ctx, event); err != nil {
		utils.GetLogger().Warn("failed to publish transition event",
			zap.String("bookingID", b.ID),
			zap.String("toStatus", b.Status),
			zap.Error(err))
	}
}

func (svc *DefaultLifecycleService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return svc.load(ctx, bookingID)
}

func (svc *DefaultLifecycleService) ListForActor(ctx context.Context, actorID, role string) ([]BookingView, error) {
	var (
		bookings []models.Booking
		err      error
	)
	switch role {
	case models.RoleTenant:
		bookings, err = svc.Bookings.ListByTenant(ctx, actorID)
	case models.RoleHost:
		bookings, err = svc.Bookings.ListByHost(ctx, actorID)
	default:
		return nil, NewForbiddenError(fmt.Sprintf("unknown actor role %q", role))
	}
	if err != nil {
		return nil, err
	}

	today := models.DateOnly(svc.now())
	views := make([]BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, BookingView{
			Booking:       bookings[i],
			DisplayStatus: DisplayStatus(&bookings[i], today),
		})
	}
	SortForDisplay(views)
	return views, nil
}
