package propertyRepo

import (
	"context"
	"errors"

	"stayloop/models"
)

// ErrNotFound indicates no property exists with the given id.
var ErrNotFound = errors.New("property not found")

// PropertyRepository is the engine's read-only view of the listing catalogue.
// Listing CRUD belongs to a separate service.
type PropertyRepository interface {
	// GetByID retrieves a property by its unique ID.
	GetByID(ctx context.Context, propertyID string) (*models.Property, error)
}
