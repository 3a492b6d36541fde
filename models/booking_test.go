package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookingOverlaps_HalfOpen(t *testing.T) {
	b := Booking{
		CheckinDate:  date(2025, 3, 1),
		CheckoutDate: date(2025, 3, 5),
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical range", date(2025, 3, 1), date(2025, 3, 5), true},
		{"contained", date(2025, 3, 2), date(2025, 3, 4), true},
		{"overlaps tail", date(2025, 3, 4), date(2025, 3, 8), true},
		{"overlaps head", date(2025, 2, 25), date(2025, 3, 2), true},
		{"back to back after checkout", date(2025, 3, 5), date(2025, 3, 9), false},
		{"back to back before checkin", date(2025, 2, 25), date(2025, 3, 1), false},
		{"disjoint", date(2025, 4, 1), date(2025, 4, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v",
					tt.start.Format("2006-01-02"), tt.end.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestHoldsCalendar(t *testing.T) {
	holding := map[string]bool{
		StatusPending:   true,
		StatusAccepted:  true,
		StatusDeclined:  false,
		StatusCancelled: false,
		StatusCompleted: false,
	}
	for status, want := range holding {
		b := Booking{Status: status}
		if got := b.HoldsCalendar(); got != want {
			t.Errorf("HoldsCalendar for %s = %v, want %v", status, got, want)
		}
	}
}

func TestDateOnly_TruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2025, 3, 1, 23, 45, 0, 0, loc) // 18:45 UTC on March 1
	got := DateOnly(in)
	want := date(2025, 3, 1)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("DateOnly location = %v, want UTC", got.Location())
	}
}

func TestCalendarEntryCovers(t *testing.T) {
	e := CalendarEntry{
		StartDate: date(2025, 3, 1),
		EndDate:   date(2025, 3, 5),
	}
	if !e.Covers(date(2025, 3, 1)) {
		t.Error("start day must be covered")
	}
	if !e.Covers(date(2025, 3, 4)) {
		t.Error("interior day must be covered")
	}
	if e.Covers(date(2025, 3, 5)) {
		t.Error("end day is exclusive")
	}
}
