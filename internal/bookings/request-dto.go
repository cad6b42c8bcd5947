package bookings

// CreateBookingRequest represents the booking creation payload. Exactly
// one of Delegates / Sponsorship / Speakerpass must be populated,
// matching Type; structural validation happens in the service so the
// error can name the missing field.
type CreateBookingRequest struct {
	Type        string               `json:"type" binding:"required,oneof=pass sponsorship speakerpass"`
	Delegates   []DelegateRequest    `json:"delegates,omitempty"`
	Sponsorship *SponsorshipRequest  `json:"sponsorship,omitempty"`
	Speakerpass []SpeakerPassRequest `json:"speakerpass,omitempty"`
	Subtotal    float64              `json:"subtotal"`
	Tax         float64              `json:"tax"`
	Total       float64              `json:"total"`
}

type DelegateRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Company   string `json:"company"`
	Email     string `json:"email" binding:"required,email"`
	Mobile    string `json:"mobile"`
	PassType  string `json:"pass_type"`
}

type SponsorshipRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Package   string `json:"package"`
}

type SpeakerPassRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Company   string `json:"company"`
	Email     string `json:"email" binding:"required,email"`
	Topic     string `json:"topic"`
	Package   string `json:"package"`
}

// BookingListQuery holds filters for the admin booking listing
type BookingListQuery struct {
	Status string `form:"status"`
	Type   string `form:"type"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
