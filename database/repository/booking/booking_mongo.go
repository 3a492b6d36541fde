package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"stayloop/database"
	"stayloop/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	return &MongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}

func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// UpdateStatus performs a compare-and-swap on the booking's version so two
// concurrent transitions on the same row cannot both succeed silently.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID string, expectedVersion int64, patch StatusPatch) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID, "version": expectedVersion}
	set := bson.M{
		"status":     patch.Status,
		"updated_at": patch.UpdatedAt,
	}
	if patch.HostNote != nil {
		set["host_note"] = *patch.HostNote
	}
	if patch.TenantNote != nil {
		set["tenant_note"] = *patch.TenantNote
	}
	if patch.AcceptedAt != nil {
		set["accepted_at"] = *patch.AcceptedAt
	}
	if patch.DeclinedAt != nil {
		set["declined_at"] = *patch.DeclinedAt
	}
	if patch.CompletedAt != nil {
		set["completed_at"] = *patch.CompletedAt
	}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := repo.coll.FindOneAndUpdate(ctxWithTimeout, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// Distinguish a missing row from a lost version race.
		count, countErr := repo.coll.CountDocuments(ctxWithTimeout, bson.M{"id": bookingID})
		if countErr != nil {
			return nil, fmt.Errorf("error checking booking %s after failed update: %w", bookingID, countErr)
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	return &updated, nil
}

func (repo *MongoBookingRepo) Overlapping(ctx context.Context, propertyID string, start, end time.Time, statuses []string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"property_id":   propertyID,
		"checkin_date":  bson.M{"$lt": end},
		"checkout_date": bson.M{"$gt": start},
		"status":        bson.M{"$in": statuses},
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching overlapping bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding overlapping bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) DueForCompletion(ctx context.Context, now time.Time) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":        models.StatusAccepted,
		"checkout_date": bson.M{"$lte": now},
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings due for completion: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings due for completion: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) SetCheckinCode(ctx context.Context, bookingID, code string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     bookingID,
		"status": bson.M{"$in": []string{models.StatusAccepted, models.StatusCompleted}},
	}
	update := bson.M{"$set": bson.M{"checkin_code": code, "updated_at": time.Now().UTC()}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := repo.coll.FindOneAndUpdate(ctxWithTimeout, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error setting check-in code for booking %s: %w", bookingID, err)
	}
	return &updated, nil
}

func (repo *MongoBookingRepo) ListByTenant(ctx context.Context, tenantID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"tenant_id": tenantID})
}

func (repo *MongoBookingRepo) ListByHost(ctx context.Context, hostID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"host_id": hostID})
}

func (repo *MongoBookingRepo) ListByProperty(ctx context.Context, propertyID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"property_id": propertyID})
}

func (repo *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
