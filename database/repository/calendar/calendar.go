package calendarRepo

import (
	"context"
	"errors"
	"time"

	"stayloop/models"
)

// ErrNotFound indicates a remove targeted a range/kind pair that does not
// exist exactly. Deletes are exact-match, never partial.
var ErrNotFound = errors.New("calendar entry not found")

// CalendarRepository defines the data access methods for host-imposed
// unavailability windows.
type CalendarRepository interface {
	// Add persists a new calendar entry. Same-kind overlap is not validated.
	Add(ctx context.Context, entry *models.CalendarEntry) error
	// Remove deletes the entry matching the exact range and kind.
	Remove(ctx context.Context, propertyID string, start, end time.Time, kind string) error
	// Overlapping returns entries on the property intersecting [start, end).
	Overlapping(ctx context.Context, propertyID string, start, end time.Time) ([]models.CalendarEntry, error)
}
