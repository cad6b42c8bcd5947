package payments

import (
	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes configures the gateway payment routes
func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	payments := rg.Group("/payments")
	{
		payments.POST("/razorpay/order", controller.CreateRazorpayOrder)    // POST /api/v1/payments/razorpay/order
		payments.POST("/razorpay/verify", controller.VerifyRazorpayPayment) // POST /api/v1/payments/razorpay/verify
		payments.POST("/paypal/order", controller.CreatePayPalOrder)        // POST /api/v1/payments/paypal/order
		payments.POST("/paypal/capture", controller.CapturePayPalOrder)     // POST /api/v1/payments/paypal/capture
	}
}
