package booking

import (
	"testing"
	"time"

	"stayloop/models"
)

func TestDisplayStatus(t *testing.T) {
	today := date(2025, 3, 3)
	checkin := date(2025, 3, 2)
	checkout := date(2025, 3, 5)

	tests := []struct {
		name    string
		status  string
		checkin time.Time
		want    string
	}{
		{"pending", models.StatusPending, checkin, DisplayPending},
		{"declined", models.StatusDeclined, checkin, DisplayDeclined},
		{"cancelled", models.StatusCancelled, checkin, DisplayCancelled},
		{"completed", models.StatusCompleted, checkin, DisplayPast},
		{"accepted before checkin", models.StatusAccepted, date(2025, 3, 10), DisplayUpcoming},
		{"accepted during stay", models.StatusAccepted, checkin, DisplayCurrent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &models.Booking{
				Status:       tt.status,
				CheckinDate:  tt.checkin,
				CheckoutDate: tt.checkin.AddDate(0, 0, 3),
			}
			if got := DisplayStatus(b, today); got != tt.want {
				t.Errorf("DisplayStatus = %q, want %q", got, tt.want)
			}
		})
	}

	// An ACCEPTED booking past checkout that the sweep has not reached yet.
	stale := &models.Booking{
		Status:       models.StatusAccepted,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
	}
	if got := DisplayStatus(stale, date(2025, 3, 5)); got != DisplayPast {
		t.Errorf("DisplayStatus on checkout day = %q, want %q", got, DisplayPast)
	}
}

func TestDisplayStatus_CheckoutDayIsAlreadyPast(t *testing.T) {
	// The stay holds [checkin, checkout), so on the checkout day itself the
	// guest is gone.
	b := &models.Booking{
		Status:       models.StatusAccepted,
		CheckinDate:  date(2025, 3, 2),
		CheckoutDate: date(2025, 3, 5),
	}
	if got := DisplayStatus(b, date(2025, 3, 5)); got != DisplayPast {
		t.Errorf("DisplayStatus = %q, want %q", got, DisplayPast)
	}
	if got := DisplayStatus(b, date(2025, 3, 4)); got != DisplayCurrent {
		t.Errorf("DisplayStatus on last night = %q, want %q", got, DisplayCurrent)
	}
}

func TestSortForDisplay_PendingFirstThenCheckin(t *testing.T) {
	mk := func(id, display string, checkin, created time.Time) BookingView {
		return BookingView{
			Booking: models.Booking{
				ID:          id,
				CheckinDate: checkin,
				CreatedAt:   created,
			},
			DisplayStatus: display,
		}
	}

	views := []BookingView{
		mk("past", DisplayPast, date(2025, 1, 10), date(2025, 1, 1)),
		mk("pending-late", DisplayPending, date(2025, 6, 1), date(2025, 2, 1)),
		mk("upcoming", DisplayUpcoming, date(2025, 4, 1), date(2025, 1, 5)),
		mk("pending-early", DisplayPending, date(2025, 3, 1), date(2025, 2, 2)),
	}
	SortForDisplay(views)

	wantOrder := []string{"pending-early", "pending-late", "past", "upcoming"}
	for i, want := range wantOrder {
		if views[i].ID != want {
			t.Fatalf("position %d = %s, want %s (full order: %v)", i, views[i].ID, want, ids(views))
		}
	}
}

func TestSortForDisplay_TiesBreakOnNewestCreated(t *testing.T) {
	checkin := date(2025, 3, 1)
	views := []BookingView{
		{Booking: models.Booking{ID: "older", CheckinDate: checkin, CreatedAt: date(2025, 1, 1)}, DisplayStatus: DisplayUpcoming},
		{Booking: models.Booking{ID: "newer", CheckinDate: checkin, CreatedAt: date(2025, 1, 2)}, DisplayStatus: DisplayUpcoming},
	}
	SortForDisplay(views)
	if views[0].ID != "newer" {
		t.Errorf("tie order = %v, want newer first", ids(views))
	}
}

func ids(views []BookingView) []string {
	out := make([]string, len(views))
	for i := range views {
		out[i] = views[i].ID
	}
	return out
}
