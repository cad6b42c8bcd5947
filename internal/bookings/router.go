package bookings

import (
	"conferly/internal/shared/config"
	"conferly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	rg.POST("/bookings", controller.CreateBooking) // POST /api/v1/bookings
	rg.GET("/bookings/:id", controller.GetBooking) // GET  /api/v1/bookings/:id

	// Admin listing requires a valid admin token
	admin := rg.Group("/bookings")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListBookings) // GET /api/v1/bookings
	}
}
