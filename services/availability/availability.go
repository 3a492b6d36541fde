package availability

import (
	"context"
	"fmt"
	"time"

	"stayloop/models"
)

// InvalidRangeError flags a zero-length or inverted date range.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalidRange: end %s is not after start %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

// Engine answers day-by-day and whole-range availability questions for a
// property, derived from calendar entries and calendar-holding bookings.
type Engine interface {
	// GetAvailability returns one entry per day in [start, end).
	GetAvailability(ctx context.Context, propertyID string, start, end time.Time) ([]models.DayAvailability, error)
	// IsRangeAvailable reports whether every day in [checkin, checkout) is free.
	IsRangeAvailable(ctx context.Context, propertyID string, checkin, checkout time.Time) (bool, error)
	// IsRangeAvailableExcluding is the accept-time form: it ignores the
	// booking being transitioned so its own PENDING row does not block it.
	IsRangeAvailableExcluding(ctx context.Context, propertyID string, checkin, checkout time.Time, excludeBookingID string) (bool, error)
	// NextAvailableDates scans forward from today and returns the first
	// count free dates. UI suggestion only, not correctness-critical.
	NextAvailableDates(ctx context.Context, propertyID string, count int) ([]time.Time, error)
	// Invalidate drops cached availability views for the property.
	Invalidate(ctx context.Context, propertyID string)
}
