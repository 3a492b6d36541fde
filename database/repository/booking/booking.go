package bookingRepo

import (
	"context"
	"errors"
	"time"

	"stayloop/models"
)

// Sentinel errors translated into the user-facing taxonomy by the service layer.
var (
	// ErrNotFound indicates no booking exists with the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrVersionConflict indicates a concurrent transition won the row; the
	// caller must re-read before deciding whether its action still applies.
	ErrVersionConflict = errors.New("booking version conflict")
)

// StatusPatch carries the fields a single transition is allowed to write.
// Exactly one of the timestamp pointers is set per transition.
type StatusPatch struct {
	Status      string
	HostNote    *string
	TenantNote  *string
	AcceptedAt  *time.Time
	DeclinedAt  *time.Time
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

// BookingRepository defines the data access methods for booking records.
type BookingRepository interface {
	// Create persists a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its ID.
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// UpdateStatus applies a transition patch iff the stored version still
	// equals expectedVersion. Losing the race yields ErrVersionConflict.
	UpdateStatus(ctx context.Context, bookingID string, expectedVersion int64, patch StatusPatch) (*models.Booking, error)
	// Overlapping returns bookings on the property whose stay window
	// intersects [start, end) and whose status is in statuses.
	Overlapping(ctx context.Context, propertyID string, start, end time.Time, statuses []string) ([]models.Booking, error)
	// DueForCompletion returns ACCEPTED bookings whose checkout date has passed.
	DueForCompletion(ctx context.Context, now time.Time) ([]models.Booking, error)
	// SetCheckinCode stores the check-in code on an ACCEPTED (or later) booking.
	SetCheckinCode(ctx context.Context, bookingID, code string) (*models.Booking, error)
	// ListByTenant returns all bookings made by a tenant, newest first.
	ListByTenant(ctx context.Context, tenantID string) ([]models.Booking, error)
	// ListByHost returns all bookings on a host's properties, newest first.
	ListByHost(ctx context.Context, hostID string) ([]models.Booking, error)
	// ListByProperty returns all bookings on a property, newest first.
	ListByProperty(ctx context.Context, propertyID string) ([]models.Booking, error)
}
