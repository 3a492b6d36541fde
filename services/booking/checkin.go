package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "stayloop/database/repository/booking"
	"stayloop/models"

	"github.com/google/uuid"
)

// AssignCheckinCode generates and stores the opaque check-in code for an
// ACCEPTED booking. The code is assigned once; repeat calls return the
// existing one.
func (svc *DefaultLifecycleService) AssignCheckinCode(ctx context.Context, bookingID, hostID string) (*models.Booking, error) {
	b, err := svc.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.HostID != hostID {
		return nil, NewForbiddenError(fmt.Sprintf("actor %s is not the host of booking %s", hostID, bookingID))
	}
	if b.Status != models.StatusAccepted && b.Status != models.StatusCompleted {
		return nil, NewInvalidTransitionError(fmt.Sprintf(
			"check-in code is only assignable once accepted; booking is %s", b.Status))
	}
	if b.CheckinCode != "" {
		return b, nil
	}

	code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	updated, err := svc.Bookings.SetCheckinCode(ctx, bookingID, code)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		// Status moved between read and write; report it as a stale client.
		return nil, NewInvalidTransitionError(fmt.Sprintf("booking %s is no longer accepting a check-in code", bookingID))
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}
