package payments

// CreateOrderRequest starts a gateway order for a pending booking
type CreateOrderRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

// VerifyRazorpayRequest carries the checkout callback fields used for
// signature verification
type VerifyRazorpayRequest struct {
	BookingID         string `json:"booking_id" binding:"required,uuid"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// CapturePayPalRequest finalizes an approved PayPal order
type CapturePayPalRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	OrderID   string `json:"order_id" binding:"required"`
}
