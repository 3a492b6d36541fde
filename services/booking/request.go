package booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	propertyRepo "stayloop/database/repository/property"
	"stayloop/models"
	"stayloop/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// priceSumTolerance absorbs float rounding in the frozen breakdown.
const priceSumTolerance = 0.01

// Request creates a new PENDING booking for the tenant. The availability
// check runs again under the property lock that guards the insert, closing
// the race between the UI's earlier pre-flight check and the actual write.
func (svc *DefaultLifecycleService) Request(ctx context.Context, input RequestInput) (*models.Booking, error) {
	checkin := models.DateOnly(input.CheckinDate)
	checkout := models.DateOnly(input.CheckoutDate)
	if !checkout.After(checkin) {
		return nil, NewInvalidRangeError(fmt.Sprintf(
			"checkout %s must be after checkin %s",
			checkout.Format("2006-01-02"), checkin.Format("2006-01-02")))
	}
	if input.GuestCount < 1 {
		return nil, NewInvalidRangeError("guest count must be at least 1")
	}
	sum := input.Price.PriceNights + input.Price.CleaningFee + input.Price.ServiceFee + input.Price.Taxes
	if math.Abs(sum-input.Price.TotalAmount) > priceSumTolerance {
		return nil, NewInvalidRangeError(fmt.Sprintf(
			"total amount %.2f does not match breakdown sum %.2f", input.Price.TotalAmount, sum))
	}

	property, err := svc.Properties.GetByID(ctx, input.PropertyID)
	if errors.Is(err, propertyRepo.ErrNotFound) {
		return nil, NewNotFoundError(fmt.Sprintf("property %s does not exist", input.PropertyID))
	}
	if err != nil {
		return nil, err
	}

	unlock, err := svc.Locks.Lock(ctx, input.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire property lock: %w", err)
	}
	defer unlock()

	free, err := svc.Availability.IsRangeAvailable(ctx, input.PropertyID, checkin, checkout)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, NewRangeUnavailableError(fmt.Sprintf(
			"property %s is not available for %s to %s",
			input.PropertyID, checkin.Format("2006-01-02"), checkout.Format("2006-01-02")))
	}

	now := svc.now()
	b := &models.Booking{
		ID:           uuid.New().String(),
		PropertyID:   input.PropertyID,
		TenantID:     input.TenantID,
		HostID:       property.HostID,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		GuestCount:   input.GuestCount,
		Price:        input.Price,
		Status:       models.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
	if err := svc.Bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking requested",
		zap.String("bookingID", b.ID),
		zap.String("propertyID", b.PropertyID),
		zap.String("tenantID", b.TenantID))
	svc.emit(ctx, b, "", models.RoleTenant)
	return b, nil
}
