package bookings

// CreateBookingResponse is returned from booking creation
type CreateBookingResponse struct {
	Success   bool     `json:"success"`
	Booking   *Booking `json:"booking"`
	BookingID string   `json:"booking_id"`
}

// BookingListResponse is the paginated admin listing
type BookingListResponse struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
