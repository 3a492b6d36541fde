package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the calendar_entries collection.
func (repo *MongoCalendarRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "property_id", Value: 1},
				{Key: "start_date", Value: 1},
				{Key: "end_date", Value: 1},
			},
			Options: options.Index().SetName("property_range_idx"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create calendar indexes: %w", err)
	}
	return nil
}
