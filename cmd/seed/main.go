package main

import (
	"fmt"
	"log"

	"conferly/internal/bookings"
	"conferly/internal/leads"
	"conferly/internal/shared/config"
	"conferly/internal/shared/database"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Conferly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(cfg); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"razorpay_payments",
		"paypal_payments",
		"booking_delegates",
		"booking_sponsorships",
		"booking_speakers",
		"bookings",
		"contacts",
		"speaker_leads",
		"sponsor_leads",
		"subscribers",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll inserts sample bookings and leads for local testing
func (s *Seeder) SeedAll(cfg *config.Config) error {
	if err := s.seedBookings(cfg); err != nil {
		return err
	}
	return s.seedLeads()
}

func (s *Seeder) seedBookings(cfg *config.Config) error {
	pricing := bookings.NewPricingEngine(cfg.Pricing)

	groupQuote := pricing.QuotePass(900, 90, 3)
	group := &bookings.Booking{
		Type:     bookings.TypePass,
		Status:   bookings.StatusPending,
		Subtotal: groupQuote.Subtotal,
		Discount: groupQuote.Discount,
		Tax:      groupQuote.Tax,
		Total:    groupQuote.Total,
		Currency: groupQuote.Currency,
		Delegates: []bookings.Delegate{
			{FirstName: "Dana", LastName: "Ives", Company: "Acme", Email: "dana@example.com", Mobile: "+15550001", PassType: "VIP"},
			{FirstName: "Sam", LastName: "Reed", Company: "Acme", Email: "sam@example.com", Mobile: "+15550002", PassType: "VIP"},
			{FirstName: "Ash", LastName: "Cole", Company: "Acme", Email: "ash@example.com", Mobile: "+15550003", PassType: "General"},
		},
	}
	if err := s.db.PostgreSQL.Create(group).Error; err != nil {
		return fmt.Errorf("failed to seed pass booking: %w", err)
	}
	fmt.Printf("  Created pass booking %s (3 delegates, total %.2f %s)\n", group.ID, group.Total, group.Currency)

	sponsorQuote := pricing.QuoteFlat(10000)
	sponsor := &bookings.Booking{
		Type:     bookings.TypeSponsorship,
		Status:   bookings.StatusPending,
		Subtotal: sponsorQuote.Subtotal,
		Total:    sponsorQuote.Total,
		Currency: sponsorQuote.Currency,
		Sponsorship: &bookings.Sponsorship{
			FirstName: "Robin", LastName: "Sage", Company: "Globex",
			Email: "robin@example.com", Package: "Gold",
		},
	}
	if err := s.db.PostgreSQL.Create(sponsor).Error; err != nil {
		return fmt.Errorf("failed to seed sponsorship booking: %w", err)
	}
	fmt.Printf("  Created sponsorship booking %s (Gold)\n", sponsor.ID)

	speakerQuote := pricing.QuoteFlat(150)
	speaker := &bookings.Booking{
		Type:     bookings.TypeSpeakerPass,
		Status:   bookings.StatusPending,
		Subtotal: speakerQuote.Subtotal,
		Total:    speakerQuote.Total,
		Currency: speakerQuote.Currency,
		Speakers: []bookings.Speaker{
			{FirstName: "Kai", LastName: "Lund", Company: "Initech", Email: "kai@example.com", Topic: "Edge caching", Package: "Speaker Pass"},
		},
	}
	if err := s.db.PostgreSQL.Create(speaker).Error; err != nil {
		return fmt.Errorf("failed to seed speakerpass booking: %w", err)
	}
	fmt.Printf("  Created speakerpass booking %s\n", speaker.ID)

	return nil
}

func (s *Seeder) seedLeads() error {
	subscriber := &leads.Subscriber{Email: "newsletter@example.com"}
	if err := s.db.PostgreSQL.Create(subscriber).Error; err != nil {
		return fmt.Errorf("failed to seed subscriber: %w", err)
	}

	contact := &leads.Contact{
		FirstName: "Mira", LastName: "Holt",
		Email: "mira@example.com", Message: "When do doors open?",
	}
	if err := s.db.PostgreSQL.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to seed contact: %w", err)
	}

	fmt.Println("  Created sample subscriber and contact")
	return nil
}
