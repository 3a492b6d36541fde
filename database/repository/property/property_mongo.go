package propertyRepo

import (
	"context"
	"fmt"
	"time"

	"stayloop/database"
	"stayloop/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPropertyRepo implements PropertyRepository using MongoDB.
type MongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo constructs a new instance of MongoPropertyRepo.
func NewMongoPropertyRepo() PropertyRepository {
	return &MongoPropertyRepo{
		coll: database.DB().Collection("properties"),
	}
}

func (repo *MongoPropertyRepo) GetByID(ctx context.Context, propertyID string) (*models.Property, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var property models.Property
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": propertyID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching property %s: %w", propertyID, err)
	}
	return &property, nil
}
