package calendar

import (
	"context"
	"sync"
	"testing"
	"time"

	calendarRepo "stayloop/database/repository/calendar"
	propertyRepo "stayloop/database/repository/property"
	"stayloop/models"
	"stayloop/services/booking"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type memCalendarRepo struct {
	mu      sync.Mutex
	entries []models.CalendarEntry
}

func (r *memCalendarRepo) Add(_ context.Context, e *models.CalendarEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *memCalendarRepo) Remove(_ context.Context, propertyID string, start, end time.Time, kind string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.PropertyID == propertyID && e.StartDate.Equal(start) && e.EndDate.Equal(end) && e.Kind == kind {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return calendarRepo.ErrNotFound
}

func (r *memCalendarRepo) Overlapping(_ context.Context, propertyID string, start, end time.Time) ([]models.CalendarEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CalendarEntry
	for _, e := range r.entries {
		if e.PropertyID == propertyID && e.StartDate.Before(end) && e.EndDate.After(start) {
			out = append(out, e)
		}
	}
	return out, nil
}

type memPropertyRepo struct {
	properties map[string]models.Property
}

func (r *memPropertyRepo) GetByID(_ context.Context, id string) (*models.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, propertyRepo.ErrNotFound
	}
	return &p, nil
}

type noopEngine struct {
	invalidated []string
}

func (e *noopEngine) GetAvailability(context.Context, string, time.Time, time.Time) ([]models.DayAvailability, error) {
	return nil, nil
}
func (e *noopEngine) IsRangeAvailable(context.Context, string, time.Time, time.Time) (bool, error) {
	return true, nil
}
func (e *noopEngine) IsRangeAvailableExcluding(context.Context, string, time.Time, time.Time, string) (bool, error) {
	return true, nil
}
func (e *noopEngine) NextAvailableDates(context.Context, string, int) ([]time.Time, error) {
	return nil, nil
}
func (e *noopEngine) Invalidate(_ context.Context, propertyID string) {
	e.invalidated = append(e.invalidated, propertyID)
}

func newTestService() (*DefaultService, *memCalendarRepo, *noopEngine) {
	cal := &memCalendarRepo{}
	engine := &noopEngine{}
	svc := &DefaultService{
		Calendar: cal,
		Properties: &memPropertyRepo{properties: map[string]models.Property{
			"prop-42": {ID: "prop-42", HostID: "host-1"},
		}},
		Availability: engine,
	}
	return svc, cal, engine
}

func TestAddEntry_StoresAndInvalidates(t *testing.T) {
	svc, cal, engine := newTestService()

	entry, err := svc.AddEntry(context.Background(), "prop-42", "host-1",
		date(2025, 3, 1), date(2025, 3, 5), models.CalendarBlocked)
	if err != nil {
		t.Fatalf("AddEntry returned error: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry id not assigned")
	}
	if len(cal.entries) != 1 {
		t.Fatalf("stored %d entries, want 1", len(cal.entries))
	}
	if len(engine.invalidated) != 1 || engine.invalidated[0] != "prop-42" {
		t.Errorf("availability not invalidated for prop-42: %v", engine.invalidated)
	}
}

func TestAddEntry_WrongHostForbidden(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddEntry(context.Background(), "prop-42", "host-2",
		date(2025, 3, 1), date(2025, 3, 5), models.CalendarBlocked)
	if booking.CodeOf(err) != booking.CodeForbidden {
		t.Errorf("error code = %q (%v), want forbidden", booking.CodeOf(err), err)
	}
}

func TestAddEntry_RejectsBadInput(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name       string
		start, end time.Time
		kind       string
	}{
		{"inverted range", date(2025, 3, 5), date(2025, 3, 1), models.CalendarBlocked},
		{"empty range", date(2025, 3, 1), date(2025, 3, 1), models.CalendarMaintenance},
		{"unknown kind", date(2025, 3, 1), date(2025, 3, 5), "vacation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddEntry(context.Background(), "prop-42", "host-1", tt.start, tt.end, tt.kind)
			if booking.CodeOf(err) != booking.CodeInvalidRange {
				t.Errorf("error code = %q (%v), want invalidRange", booking.CodeOf(err), err)
			}
		})
	}
}

func TestAddEntry_SameKindOverlapAllowed(t *testing.T) {
	svc, cal, _ := newTestService()

	for _, r := range [][2]time.Time{
		{date(2025, 3, 1), date(2025, 3, 5)},
		{date(2025, 3, 3), date(2025, 3, 8)},
	} {
		if _, err := svc.AddEntry(context.Background(), "prop-42", "host-1", r[0], r[1], models.CalendarBlocked); err != nil {
			t.Fatalf("AddEntry(%v) returned error: %v", r, err)
		}
	}
	if len(cal.entries) != 2 {
		t.Errorf("stored %d entries, want 2 stacked overlaps", len(cal.entries))
	}
}

func TestRemoveEntry_ExactMatchOnly(t *testing.T) {
	svc, _, engine := newTestService()

	_, err := svc.AddEntry(context.Background(), "prop-42", "host-1",
		date(2025, 3, 1), date(2025, 3, 5), models.CalendarBlocked)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	// A different range, even overlapping, is not removable.
	err = svc.RemoveEntry(context.Background(), "prop-42", "host-1",
		date(2025, 3, 1), date(2025, 3, 4), models.CalendarBlocked)
	if booking.CodeOf(err) != booking.CodeNotFound {
		t.Errorf("error code = %q (%v), want notFound", booking.CodeOf(err), err)
	}

	err = svc.RemoveEntry(context.Background(), "prop-42", "host-1",
		date(2025, 3, 1), date(2025, 3, 5), models.CalendarBlocked)
	if err != nil {
		t.Fatalf("RemoveEntry returned error: %v", err)
	}
	if len(engine.invalidated) != 2 {
		t.Errorf("expected invalidation on add and remove, got %v", engine.invalidated)
	}
}
