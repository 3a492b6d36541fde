package booking

import (
	"context"
	"time"

	bookingRepo "stayloop/database/repository/booking"
	propertyRepo "stayloop/database/repository/property"
	"stayloop/models"
	"stayloop/services/availability"
	"stayloop/services/notification"
)

// RequestInput carries everything a tenant supplies to open a booking. The
// price breakdown comes frozen from the pricing service and is stored
// verbatim.
type RequestInput struct {
	PropertyID   string                `json:"property_id"`
	TenantID     string                `json:"tenant_id"`
	CheckinDate  time.Time             `json:"checkin_date"`
	CheckoutDate time.Time             `json:"checkout_date"`
	GuestCount   int                   `json:"guest_count"`
	Price        models.PriceBreakdown `json:"price"`
}

// LifecycleService validates and executes actor-initiated booking
// transitions. Every transition either commits fully or fails cleanly with
// one of the taxonomy errors; there are no internal retries.
type LifecycleService interface {
	Request(ctx context.Context, input RequestInput) (*models.Booking, error)
	Accept(ctx context.Context, bookingID, hostID, hostNote string) (*models.Booking, error)
	Decline(ctx context.Context, bookingID, hostID, hostNote string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, tenantID, tenantNote string) (*models.Booking, error)
	Withdraw(ctx context.Context, bookingID, tenantID string) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string, now time.Time) (*models.Booking, error)
	CompleteDueBookings(ctx context.Context, now time.Time) ([]models.Booking, error)
	AssignCheckinCode(ctx context.Context, bookingID, hostID string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListForActor(ctx context.Context, actorID, role string) ([]BookingView, error)
}

// DefaultLifecycleService implements LifecycleService.
type DefaultLifecycleService struct {
	Bookings     bookingRepo.BookingRepository
	Properties   propertyRepo.PropertyRepository
	Availability availability.Engine
	Locks        PropertyLocker
	Publisher    notification.Publisher
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (svc *DefaultLifecycleService) now() time.Time {
	if svc.Now != nil {
		return svc.Now().UTC()
	}
	return time.Now().UTC()
}
