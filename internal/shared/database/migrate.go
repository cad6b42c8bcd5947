package database

import (
	"conferly/internal/bookings"
	"conferly/internal/leads"
	"conferly/internal/payments"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&bookings.Booking{},
		&bookings.Delegate{},
		&bookings.Sponsorship{},
		&bookings.Speaker{},
		&payments.RazorpayPayment{},
		&payments.PaypalPayment{},
		&leads.Contact{},
		&leads.SpeakerLead{},
		&leads.SponsorLead{},
		&leads.Subscriber{},
	)
}
