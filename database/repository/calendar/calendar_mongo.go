package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"stayloop/database"
	"stayloop/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCalendarRepo implements CalendarRepository using MongoDB.
type MongoCalendarRepo struct {
	coll *mongo.Collection
}

// NewMongoCalendarRepo constructs a new instance of MongoCalendarRepo.
func NewMongoCalendarRepo() CalendarRepository {
	return &MongoCalendarRepo{
		coll: database.DB().Collection("calendar_entries"),
	}
}

func (repo *MongoCalendarRepo) Add(ctx context.Context, entry *models.CalendarEntry) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, entry); err != nil {
		return fmt.Errorf("error creating calendar entry: %w", err)
	}
	return nil
}

func (repo *MongoCalendarRepo) Remove(ctx context.Context, propertyID string, start, end time.Time, kind string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"property_id": propertyID,
		"start_date":  start,
		"end_date":    end,
		"kind":        kind,
	}
	res, err := repo.coll.DeleteOne(ctxWithTimeout, filter)
	if err != nil {
		return fmt.Errorf("error removing calendar entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoCalendarRepo) Overlapping(ctx context.Context, propertyID string, start, end time.Time) ([]models.CalendarEntry, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"property_id": propertyID,
		"start_date":  bson.M{"$lt": end},
		"end_date":    bson.M{"$gt": start},
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching calendar entries: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var entries []models.CalendarEntry
	if err := cursor.All(ctxWithTimeout, &entries); err != nil {
		return nil, fmt.Errorf("error decoding calendar entries: %w", err)
	}
	return entries, nil
}
