package models

import "time"

// Booking statuses. A booking moves from PENDING to exactly one terminal path
// and is never deleted.
const (
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusDeclined  = "DECLINED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Actor roles as supplied by the identity service.
const (
	RoleHost   = "host"
	RoleTenant = "tenant"
)

// PriceBreakdown is the frozen pricing snapshot attached at request time.
// The engine stores it verbatim and never recomputes it.
type PriceBreakdown struct {
	PriceNights float64 `bson:"price_nights" json:"price_nights"`
	CleaningFee float64 `bson:"cleaning_fee" json:"cleaning_fee"`
	ServiceFee  float64 `bson:"service_fee" json:"service_fee"`
	Taxes       float64 `bson:"taxes" json:"taxes"`
	TotalAmount float64 `bson:"total_amount" json:"total_amount"`
	Currency    string  `bson:"currency" json:"currency"`
}

// Booking represents a reservation record. Check-in/check-out dates follow
// half-open semantics: a stay occupies [CheckinDate, CheckoutDate).
type Booking struct {
	ID         string `bson:"id" json:"id"`
	PropertyID string `bson:"property_id" json:"property_id"`
	TenantID   string `bson:"tenant_id" json:"tenant_id"`
	HostID     string `bson:"host_id" json:"host_id"` // denormalized at creation for authorization checks

	CheckinDate  time.Time `bson:"checkin_date" json:"checkin_date"`
	CheckoutDate time.Time `bson:"checkout_date" json:"checkout_date"`
	GuestCount   int       `bson:"guest_count" json:"guest_count"`

	Price PriceBreakdown `bson:"price" json:"price"`

	Status      string `bson:"status" json:"status"`
	HostNote    string `bson:"host_note,omitempty" json:"host_note,omitempty"`
	TenantNote  string `bson:"tenant_note,omitempty" json:"tenant_note,omitempty"`
	CheckinCode string `bson:"checkin_code,omitempty" json:"checkin_code,omitempty"` // assignable once ACCEPTED

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	AcceptedAt  *time.Time `bson:"accepted_at,omitempty" json:"accepted_at,omitempty"`
	DeclinedAt  *time.Time `bson:"declined_at,omitempty" json:"declined_at,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`

	// Version guards concurrent transitions on the same row.
	Version int64 `bson:"version" json:"version"`
}

// HoldsCalendar reports whether the booking counts toward the no-overlap
// invariant (only PENDING and ACCEPTED bookings reserve their range).
func (b *Booking) HoldsCalendar() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// Overlaps reports whether the booking's stay window intersects
// [start, end) under half-open semantics.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.CheckinDate.Before(end) && b.CheckoutDate.After(start)
}

// HoldingStatuses is the status set that reserves calendar range.
var HoldingStatuses = []string{StatusPending, StatusAccepted}
