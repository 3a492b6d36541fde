package booking

import (
	"sort"
	"time"

	"stayloop/models"
)

// Display statuses derived for list pages. Presentation-only: the stored
// status stays the single source of truth for the lifecycle.
const (
	DisplayPending   = "pending"
	DisplayUpcoming  = "upcoming"
	DisplayCurrent   = "current"
	DisplayPast      = "past"
	DisplayCancelled = "cancelled"
	DisplayDeclined  = "declined"
)

// BookingView is a booking annotated with its derived display status.
type BookingView struct {
	models.Booking
	DisplayStatus string `json:"display_status"`
}

// DisplayStatus derives the presentation status from the stored status and
// today's date. Every list surface must go through this one derivation.
func DisplayStatus(b *models.Booking, today time.Time) string {
	switch b.Status {
	case models.StatusPending:
		return DisplayPending
	case models.StatusDeclined:
		return DisplayDeclined
	case models.StatusCancelled:
		return DisplayCancelled
	case models.StatusCompleted:
		return DisplayPast
	case models.StatusAccepted:
		if today.Before(b.CheckinDate) {
			return DisplayUpcoming
		}
		if today.Before(b.CheckoutDate) {
			return DisplayCurrent
		}
		// Checked out but the sweep has not run yet.
		return DisplayPast
	}
	return b.Status
}

// SortForDisplay orders views for list pages: pending requests first
// regardless of date, then by check-in date ascending, newest created first
// on ties.
func SortForDisplay(views []BookingView) {
	sort.SliceStable(views, func(i, j int) bool {
		pi := views[i].DisplayStatus == DisplayPending
		pj := views[j].DisplayStatus == DisplayPending
		if pi != pj {
			return pi
		}
		if !views[i].CheckinDate.Equal(views[j].CheckinDate) {
			return views[i].CheckinDate.Before(views[j].CheckinDate)
		}
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
}
