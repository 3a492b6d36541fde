package handlers

import (
	"net/http"

	"stayloop/services/calendar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler exposes host block / maintenance window management.
type CalendarHandler struct {
	Calendar calendar.Service
	Logger   *zap.Logger
}

func NewCalendarHandler(svc calendar.Service, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{Calendar: svc, Logger: logger}
}

type calendarEntryInput struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
}

// AddEntry blocks a date range on the host's property.
func (h *CalendarHandler) AddEntry(c *gin.Context) {
	var input calendarEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	start, ok := parseDate(input.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, ok := parseDate(input.EndDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}

	entry, err := h.Calendar.AddEntry(c.Request.Context(), c.Param("id"), c.GetString("actorID"), start, end, input.Kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// RemoveEntry deletes an exact range/kind pair from the property calendar.
func (h *CalendarHandler) RemoveEntry(c *gin.Context) {
	var input calendarEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	start, ok := parseDate(input.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, ok := parseDate(input.EndDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}

	if err := h.Calendar.RemoveEntry(c.Request.Context(), c.Param("id"), c.GetString("actorID"), start, end, input.Kind); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
