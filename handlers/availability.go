package handlers

import (
	"net/http"
	"strconv"

	"stayloop/services/availability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the availability engine's read surface.
type AvailabilityHandler struct {
	Engine availability.Engine
	Logger *zap.Logger
}

func NewAvailabilityHandler(engine availability.Engine, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine, Logger: logger}
}

// GetAvailability returns the day-by-day view for ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	start, ok := parseDate(c.Query("start"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
		return
	}
	end, ok := parseDate(c.Query("end"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
		return
	}

	days, err := h.Engine.GetAvailability(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// CheckRange answers the pre-flight "is this exact range free?" query. The
// authoritative check still happens inside the request transition.
func (h *AvailabilityHandler) CheckRange(c *gin.Context) {
	checkin, ok := parseDate(c.Query("checkin"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkin must be YYYY-MM-DD"})
		return
	}
	checkout, ok := parseDate(c.Query("checkout"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkout must be YYYY-MM-DD"})
		return
	}

	free, err := h.Engine.IsRangeAvailable(c.Request.Context(), c.Param("id"), checkin, checkout)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": free})
}

// NextAvailableDates returns the first ?count free dates from today.
func (h *AvailabilityHandler) NextAvailableDates(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "5"))
	if err != nil || count < 1 || count > 90 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 90"})
		return
	}

	dates, err := h.Engine.NextAvailableDates(c.Request.Context(), c.Param("id"), count)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	c.JSON(http.StatusOK, gin.H{"dates": out})
}
