package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	calendarRepo "stayloop/database/repository/calendar"
	propertyRepo "stayloop/database/repository/property"
	"stayloop/models"
	"stayloop/services/availability"
	"stayloop/services/booking"
	"stayloop/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages host-imposed unavailability windows. Entries have no
// lifecycle beyond existence; stacked same-kind overlaps are allowed.
type Service interface {
	AddEntry(ctx context.Context, propertyID, hostID string, start, end time.Time, kind string) (*models.CalendarEntry, error)
	RemoveEntry(ctx context.Context, propertyID, hostID string, start, end time.Time, kind string) error
}

// DefaultService implements Service.
type DefaultService struct {
	Calendar     calendarRepo.CalendarRepository
	Properties   propertyRepo.PropertyRepository
	Availability availability.Engine
}

func (svc *DefaultService) authorize(ctx context.Context, propertyID, hostID string) error {
	property, err := svc.Properties.GetByID(ctx, propertyID)
	if errors.Is(err, propertyRepo.ErrNotFound) {
		return booking.NewNotFoundError(fmt.Sprintf("property %s does not exist", propertyID))
	}
	if err != nil {
		return err
	}
	if property.HostID != hostID {
		return booking.NewForbiddenError(fmt.Sprintf("actor %s is not the host of property %s", hostID, propertyID))
	}
	return nil
}

func validateRange(start, end time.Time, kind string) (time.Time, time.Time, error) {
	start, end = models.DateOnly(start), models.DateOnly(end)
	if !end.After(start) {
		return start, end, booking.NewInvalidRangeError(fmt.Sprintf(
			"end %s must be after start %s", end.Format("2006-01-02"), start.Format("2006-01-02")))
	}
	if kind != models.CalendarBlocked && kind != models.CalendarMaintenance {
		return start, end, booking.NewInvalidRangeError(fmt.Sprintf("unknown calendar entry kind %q", kind))
	}
	return start, end, nil
}

func (svc *DefaultService) AddEntry(ctx context.Context, propertyID, hostID string, start, end time.Time, kind string) (*models.CalendarEntry, error) {
	start, end, err := validateRange(start, end, kind)
	if err != nil {
		return nil, err
	}
	if err := svc.authorize(ctx, propertyID, hostID); err != nil {
		return nil, err
	}

	entry := &models.CalendarEntry{
		ID:         uuid.New().String(),
		PropertyID: propertyID,
		StartDate:  start,
		EndDate:    end,
		Kind:       kind,
		CreatedAt:  time.Now().UTC(),
	}
	if err := svc.Calendar.Add(ctx, entry); err != nil {
		return nil, err
	}

	svc.Availability.Invalidate(ctx, propertyID)
	utils.GetLogger().Info("calendar entry added",
		zap.String("propertyID", propertyID),
		zap.String("kind", kind))
	return entry, nil
}

func (svc *DefaultService) RemoveEntry(ctx context.Context, propertyID, hostID string, start, end time.Time, kind string) error {
	start, end, err := validateRange(start, end, kind)
	if err != nil {
		return err
	}
	if err := svc.authorize(ctx, propertyID, hostID); err != nil {
		return err
	}

	err = svc.Calendar.Remove(ctx, propertyID, start, end, kind)
	if errors.Is(err, calendarRepo.ErrNotFound) {
		return booking.NewNotFoundError(fmt.Sprintf(
			"no %s entry for %s to %s on property %s",
			kind, start.Format("2006-01-02"), end.Format("2006-01-02"), propertyID))
	}
	if err != nil {
		return err
	}

	svc.Availability.Invalidate(ctx, propertyID)
	return nil
}
