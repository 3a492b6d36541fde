package models

// Property is the bookable unit. Listing CRUD lives in a separate service;
// the engine only reads what it needs for authorization and bounds checks.
type Property struct {
	ID           string  `bson:"id" json:"id"`
	HostID       string  `bson:"host_id" json:"host_id"`
	Title        string  `bson:"title" json:"title"`
	NightlyPrice float64 `bson:"nightly_price" json:"nightly_price"`
	Currency     string  `bson:"currency" json:"currency"`
	MaxGuests    int     `bson:"max_guests" json:"max_guests"`
}
