package bookings

import (
	"net/http"

	"conferly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, gin.H{"details": err.Error()})
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, CreateBookingResponse{
		Success:   true,
		Booking:   booking,
		BookingID: booking.ID.String(),
	})
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Booking retrieved", booking)
}

// ListBookings handles GET /api/v1/bookings (admin)
func (c *Controller) ListBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, gin.H{"details": err.Error()})
		return
	}

	result, err := c.service.ListBookings(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved", result)
}
