package payments

import (
	"net/http"

	"conferly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateRazorpayOrder handles POST /api/v1/payments/razorpay/order
func (c *Controller) CreateRazorpayOrder(ctx *gin.Context) {
	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, gin.H{"details": err.Error()})
		return
	}

	order, err := c.service.CreateRazorpayOrder(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Order created", order)
}

// VerifyRazorpayPayment handles POST /api/v1/payments/razorpay/verify
func (c *Controller) VerifyRazorpayPayment(ctx *gin.Context) {
	var req VerifyRazorpayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, gin.H{"details": err.Error()})
		return
	}

	confirmation, err := c.service.VerifyRazorpayPayment(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Payment verified", confirmation)
}

// CreatePayPalOrder handles POST /api/v1/payments/paypal/order
func (c *Controller) CreatePayPalOrder(ctx *gin.Context) {
	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, gin.H{"details": err.Error()})
		return
	}

	order, err := c.service.CreatePayPalOrder(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Order created", order)
}

// CapturePayPalOrder handles POST /api/v1/payments/paypal/capture
func (c *Controller) CapturePayPalOrder(ctx *gin.Context) {
	var req CapturePayPalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, gin.H{"details": err.Error()})
		return
	}

	confirmation, err := c.service.CapturePayPalOrder(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Payment captured", confirmation)
}
