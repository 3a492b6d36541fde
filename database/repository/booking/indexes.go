package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (repo *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary overlap-query pattern.
		{
			Keys: bson.D{
				{Key: "property_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "checkin_date", Value: 1},
				{Key: "checkout_date", Value: 1},
			},
			Options: options.Index().SetName("property_status_range_idx"),
		},
		// Completion sweep.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "checkout_date", Value: 1}},
			Options: options.Index().SetName("status_checkout_idx"),
		},
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("tenant_created_idx"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
