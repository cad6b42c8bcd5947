package bookings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is the aggregate root for a conference registration. Exactly one
// of the participant slots (Delegates / Sponsorship / Speakers) is
// populated, according to Type. Monetary fields are stored in the base
// currency (USD); settlement in another currency is recorded on the
// payment record, not recomputed here.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Type          Type      `gorm:"type:varchar(20);not null;index" json:"type"`
	Subtotal      float64   `gorm:"not null" json:"subtotal"`
	Discount      float64   `gorm:"not null" json:"discount"`
	Tax           float64   `gorm:"not null" json:"tax"`
	Total         float64   `gorm:"not null" json:"total"`
	Currency      string    `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	AmountPaid    float64   `json:"amount_paid"`
	PaymentMethod string    `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	Paid          bool      `gorm:"default:false" json:"paid"`
	Status        Status    `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships (type-dependent participant slots)
	Delegates   []Delegate   `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;" json:"delegates,omitempty"`
	Sponsorship *Sponsorship `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;" json:"sponsorship,omitempty"`
	Speakers    []Speaker    `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;" json:"speakers,omitempty"`
}

// Delegate is a single attendee on a pass booking
type Delegate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `gorm:"not null" json:"email"`
	Mobile    string    `json:"mobile,omitempty"`
	PassType  string    `json:"pass_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Sponsorship is the single contact record on a sponsorship booking
type Sponsorship struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `gorm:"not null" json:"email"`
	Package   string    `gorm:"not null" json:"package"`
	CreatedAt time.Time `json:"created_at"`
}

// Speaker is a single speaker on a speaker-pass booking
type Speaker struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `gorm:"not null" json:"email"`
	Topic     string    `json:"topic,omitempty"`
	Package   string    `gorm:"default:'Speaker Pass'" json:"package"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for Delegate
func (Delegate) TableName() string {
	return "booking_delegates"
}

// TableName sets the table name for Sponsorship
func (Sponsorship) TableName() string {
	return "booking_sponsorships"
}

// TableName sets the table name for Speaker
func (Speaker) TableName() string {
	return "booking_speakers"
}

// BeforeCreate assigns a UUID so the model works on any SQL backend
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (d *Delegate) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (s *Sponsorship) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Speaker) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Helper methods for booking state

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// ParticipantCount returns the number of people in the populated slot
func (b *Booking) ParticipantCount() int {
	switch b.Type {
	case TypePass:
		return len(b.Delegates)
	case TypeSponsorship:
		if b.Sponsorship != nil {
			return 1
		}
		return 0
	case TypeSpeakerPass:
		return len(b.Speakers)
	}
	return 0
}
