package handlers

import (
	"net/http"
	"time"

	"stayloop/models"
	"stayloop/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the lifecycle state machine over HTTP.
type BookingHandler struct {
	Lifecycle booking.LifecycleService
	Logger    *zap.Logger
}

func NewBookingHandler(lifecycle booking.LifecycleService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Lifecycle: lifecycle, Logger: logger}
}

type requestBookingInput struct {
	PropertyID   string                `json:"property_id" binding:"required"`
	CheckinDate  string                `json:"checkin_date" binding:"required"`
	CheckoutDate string                `json:"checkout_date" binding:"required"`
	GuestCount   int                   `json:"guest_count" binding:"required"`
	Price        models.PriceBreakdown `json:"price" binding:"required"`
}

type noteInput struct {
	Note string `json:"note"`
}

func parseDate(s string) (time.Time, bool) {
	d, err := time.Parse("2006-01-02", s)
	return d, err == nil
}

// RequestBooking creates a new PENDING booking for the authenticated tenant.
func (h *BookingHandler) RequestBooking(c *gin.Context) {
	var input requestBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	checkin, ok := parseDate(input.CheckinDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkin_date must be YYYY-MM-DD"})
		return
	}
	checkout, ok := parseDate(input.CheckoutDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkout_date must be YYYY-MM-DD"})
		return
	}

	b, err := h.Lifecycle.Request(c.Request.Context(), booking.RequestInput{
		PropertyID:   input.PropertyID,
		TenantID:     c.GetString("actorID"),
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		GuestCount:   input.GuestCount,
		Price:        input.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// AcceptBooking confirms a pending booking on behalf of the host.
func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	var input noteInput
	_ = c.ShouldBindJSON(&input)

	b, err := h.Lifecycle.Accept(c.Request.Context(), c.Param("id"), c.GetString("actorID"), input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeclineBooking rejects a pending booking on behalf of the host.
func (h *BookingHandler) DeclineBooking(c *gin.Context) {
	var input noteInput
	_ = c.ShouldBindJSON(&input)

	b, err := h.Lifecycle.Decline(c.Request.Context(), c.Param("id"), c.GetString("actorID"), input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking releases an accepted booking on behalf of the tenant.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input noteInput
	_ = c.ShouldBindJSON(&input)

	b, err := h.Lifecycle.Cancel(c.Request.Context(), c.Param("id"), c.GetString("actorID"), input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// WithdrawBooking pulls back a still-pending request on behalf of the tenant.
func (h *BookingHandler) WithdrawBooking(c *gin.Context) {
	b, err := h.Lifecycle.Withdraw(c.Request.Context(), c.Param("id"), c.GetString("actorID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// AssignCheckinCode generates the check-in code for an accepted booking.
func (h *BookingHandler) AssignCheckinCode(c *gin.Context) {
	b, err := h.Lifecycle.AssignCheckinCode(c.Request.Context(), c.Param("id"), c.GetString("actorID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "checkin_code": b.CheckinCode})
}

// GetBooking returns a single booking visible to its host or tenant.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Lifecycle.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	actorID := c.GetString("actorID")
	if b.TenantID != actorID && b.HostID != actorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a party to this booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookings returns the actor's bookings annotated with display statuses.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	views, err := h.Lifecycle.ListForActor(c.Request.Context(), c.GetString("actorID"), c.GetString("actorRole"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}
