package models

import "time"

// Calendar entry kinds. Entries are host- or system-imposed unavailability
// windows unrelated to a specific booking.
const (
	CalendarBlocked     = "blocked"
	CalendarMaintenance = "maintenance"
)

// CalendarEntry marks [StartDate, EndDate) unavailable for a property.
// Same-kind overlaps are allowed; hosts may stack blocks.
type CalendarEntry struct {
	ID         string    `bson:"id" json:"id"`
	PropertyID string    `bson:"property_id" json:"property_id"`
	StartDate  time.Time `bson:"start_date" json:"start_date"`
	EndDate    time.Time `bson:"end_date" json:"end_date"`
	Kind       string    `bson:"kind" json:"kind"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// Covers reports whether the entry covers the given day.
func (e *CalendarEntry) Covers(day time.Time) bool {
	return !day.Before(e.StartDate) && day.Before(e.EndDate)
}
