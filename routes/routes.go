package routes

import (
	"stayloop/handlers"
	"stayloop/middleware"
	"stayloop/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all endpoints for the booking engine.
func RegisterRoutes(
	r *gin.Engine,
	bookingHandler *handlers.BookingHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	calendarHandler *handlers.CalendarHandler,
) {
	api := r.Group("/api")
	api.Use(middleware.ActorAuthMiddleware())

	bookings := api.Group("/bookings")
	{
		bookings.POST("", middleware.RequireRole(models.RoleTenant), bookingHandler.RequestBooking)
		bookings.GET("", bookingHandler.ListBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)

		bookings.POST("/:id/accept", middleware.RequireRole(models.RoleHost), bookingHandler.AcceptBooking)
		bookings.POST("/:id/decline", middleware.RequireRole(models.RoleHost), bookingHandler.DeclineBooking)
		bookings.POST("/:id/checkin-code", middleware.RequireRole(models.RoleHost), bookingHandler.AssignCheckinCode)

		bookings.POST("/:id/cancel", middleware.RequireRole(models.RoleTenant), bookingHandler.CancelBooking)
		bookings.POST("/:id/withdraw", middleware.RequireRole(models.RoleTenant), bookingHandler.WithdrawBooking)
	}

	properties := api.Group("/properties")
	{
		properties.GET("/:id/availability", availabilityHandler.GetAvailability)
		properties.GET("/:id/availability/check", availabilityHandler.CheckRange)
		properties.GET("/:id/availability/next", availabilityHandler.NextAvailableDates)

		properties.POST("/:id/calendar", middleware.RequireRole(models.RoleHost), calendarHandler.AddEntry)
		properties.DELETE("/:id/calendar", middleware.RequireRole(models.RoleHost), calendarHandler.RemoveEntry)
	}
}
