package handlers

import (
	"errors"
	"net/http"

	"stayloop/services/availability"
	"stayloop/services/booking"
	"stayloop/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the engine's error taxonomy onto HTTP statuses. Every
// taxonomy error reaches the client unchanged so the UI can show an accurate,
// specific message.
func respondError(c *gin.Context, err error) {
	var rangeErr *availability.InvalidRangeError
	if errors.As(err, &rangeErr) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Message: rangeErr.Error(),
			Code:    booking.CodeInvalidRange,
		})
		return
	}

	var status int
	switch booking.CodeOf(err) {
	case booking.CodeInvalidRange:
		status = http.StatusBadRequest
	case booking.CodeForbidden:
		status = http.StatusForbidden
	case booking.CodeNotFound:
		status = http.StatusNotFound
	case booking.CodeInvalidTransition, booking.CodeConflict:
		status = http.StatusConflict
	case booking.CodeRangeUnavailable:
		status = http.StatusUnprocessableEntity
	default:
		utils.GetLogger().Error("unexpected engine error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Message: "Internal Server Error",
		})
		return
	}

	var domainErr *booking.Error
	errors.As(err, &domainErr)
	c.JSON(status, utils.ErrorResponse{
		Message: domainErr.Message,
		Code:    domainErr.Code,
	})
}
