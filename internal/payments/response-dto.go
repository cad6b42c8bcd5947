package payments

// RazorpayOrderResponse is returned to the frontend checkout
type RazorpayOrderResponse struct {
	OrderID     string  `json:"order_id"`
	AmountPaise int64   `json:"amount"`
	Currency    string  `json:"currency"`
	KeyID       string  `json:"key_id"`
	BookingID   string  `json:"booking_id"`
	USDTotal    float64 `json:"usd_total"`
}

// PayPalOrderResponse is returned to the frontend checkout
type PayPalOrderResponse struct {
	OrderID   string  `json:"order_id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// ConfirmationResponse reports a confirmed booking after payment
type ConfirmationResponse struct {
	BookingID     string `json:"booking_id"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
}
