package models

import "time"

// Day availability reasons, in precedence order: a booking always wins the
// label for a day even if a block was added on top of it.
const (
	ReasonAvailable   = "available"
	ReasonBooked      = "booked"
	ReasonBlocked     = "blocked"
	ReasonMaintenance = "maintenance"
)

// DayAvailability is one calendar day of a property's availability view.
type DayAvailability struct {
	Date      time.Time `json:"date"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason"`
}

// DateOnly truncates t to midnight UTC. All range arithmetic in the engine
// operates on day granularity.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
