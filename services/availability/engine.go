package availability

import (
	"context"
	"fmt"
	"time"

	bookingRepo "stayloop/database/repository/booking"
	calendarRepo "stayloop/database/repository/calendar"
	"stayloop/models"
	"stayloop/utils"

	"go.uber.org/zap"
)

// DefaultEngine computes availability from the booking and calendar stores.
type DefaultEngine struct {
	Bookings bookingRepo.BookingRepository
	Calendar calendarRepo.CalendarRepository
	Cache    *ViewCache // nil disables caching
	// HorizonDays bounds the NextAvailableDates forward scan.
	HorizonDays int
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (e *DefaultEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultEngine) GetAvailability(ctx context.Context, propertyID string, start, end time.Time) ([]models.DayAvailability, error) {
	start, end = models.DateOnly(start), models.DateOnly(end)
	if !end.After(start) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	if e.Cache != nil {
		if days, ok := e.Cache.Get(ctx, propertyID, start, end); ok {
			return days, nil
		}
	}

	days, err := e.computeAvailability(ctx, propertyID, start, end)
	if err != nil {
		return nil, err
	}

	if e.Cache != nil {
		e.Cache.Put(ctx, propertyID, start, end, days)
	}
	return days, nil
}

// computeAvailability resolves each day's reason with booked > blocked >
// maintenance > available precedence. A booking always wins the label even if
// a block was separately added afterward: the booking is the authoritative
// reservation of the slot.
func (e *DefaultEngine) computeAvailability(ctx context.Context, propertyID string, start, end time.Time) ([]models.DayAvailability, error) {
	holding, err := e.Bookings.Overlapping(ctx, propertyID, start, end, models.HoldingStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overlapping bookings: %w", err)
	}
	entries, err := e.Calendar.Overlapping(ctx, propertyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar entries: %w", err)
	}

	var days []models.DayAvailability
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		reason := models.ReasonAvailable
		for i := range holding {
			if holding[i].Overlaps(d, d.AddDate(0, 0, 1)) {
				reason = models.ReasonBooked
				break
			}
		}
		if reason == models.ReasonAvailable {
			for i := range entries {
				if !entries[i].Covers(d) {
					continue
				}
				if entries[i].Kind == models.CalendarBlocked {
					reason = models.ReasonBlocked
					break
				}
				// Keep scanning: a blocked entry outranks maintenance.
				reason = models.ReasonMaintenance
			}
		}
		days = append(days, models.DayAvailability{
			Date:      d,
			Available: reason == models.ReasonAvailable,
			Reason:    reason,
		})
	}
	return days, nil
}

func (e *DefaultEngine) IsRangeAvailable(ctx context.Context, propertyID string, checkin, checkout time.Time) (bool, error) {
	return e.IsRangeAvailableExcluding(ctx, propertyID, checkin, checkout, "")
}

func (e *DefaultEngine) IsRangeAvailableExcluding(ctx context.Context, propertyID string, checkin, checkout time.Time, excludeBookingID string) (bool, error) {
	checkin, checkout = models.DateOnly(checkin), models.DateOnly(checkout)
	if !checkout.After(checkin) {
		return false, &InvalidRangeError{Start: checkin, End: checkout}
	}

	holding, err := e.Bookings.Overlapping(ctx, propertyID, checkin, checkout, models.HoldingStatuses)
	if err != nil {
		return false, fmt.Errorf("failed to fetch overlapping bookings: %w", err)
	}
	for i := range holding {
		if holding[i].ID == excludeBookingID {
			continue
		}
		return false, nil
	}

	entries, err := e.Calendar.Overlapping(ctx, propertyID, checkin, checkout)
	if err != nil {
		return false, fmt.Errorf("failed to fetch calendar entries: %w", err)
	}
	return len(entries) == 0, nil
}

func (e *DefaultEngine) NextAvailableDates(ctx context.Context, propertyID string, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, nil
	}
	horizon := e.HorizonDays
	if horizon <= 0 {
		horizon = 365
	}

	today := models.DateOnly(e.now())
	windowEnd := today.AddDate(0, 0, horizon)
	days, err := e.computeAvailability(ctx, propertyID, today, windowEnd)
	if err != nil {
		return nil, err
	}

	var free []time.Time
	for _, day := range days {
		if !day.Available {
			continue
		}
		free = append(free, day.Date)
		if len(free) == count {
			break
		}
	}
	if len(free) < count {
		utils.GetLogger().Debug("availability scan exhausted horizon",
			zap.String("propertyID", propertyID),
			zap.Int("requested", count),
			zap.Int("found", len(free)))
	}
	return free, nil
}

func (e *DefaultEngine) Invalidate(ctx context.Context, propertyID string) {
	if e.Cache != nil {
		e.Cache.Invalidate(ctx, propertyID)
	}
}
