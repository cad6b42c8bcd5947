package leads

// ContactRequest is the contact form payload
type ContactRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Message   string `json:"message" binding:"required"`
}

// SpeakerLeadRequest is the speaking proposal payload
type SpeakerLeadRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Company   string `json:"company"`
	Topic     string `json:"topic" binding:"required"`
	Bio       string `json:"bio"`
}

// SponsorLeadRequest is the sponsorship enquiry payload
type SponsorLeadRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Company   string `json:"company" binding:"required"`
	Phone     string `json:"phone"`
}

// SubscribeRequest is the newsletter signup payload
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}
