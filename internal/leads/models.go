package leads

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is a message from the contact form
type Contact struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;index"`
	Phone     string    `json:"phone" gorm:"type:varchar(30)"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// SpeakerLead is a speaking proposal submitted from the site
type SpeakerLead struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Company   string    `json:"company" gorm:"type:varchar(255)"`
	Topic     string    `json:"topic" gorm:"type:varchar(255);not null"`
	Bio       string    `json:"bio" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (SpeakerLead) TableName() string {
	return "speaker_leads"
}

func (s *SpeakerLead) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SponsorLead is a sponsorship enquiry
type SponsorLead struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Company   string    `json:"company" gorm:"type:varchar(255);not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(30)"`
	CreatedAt time.Time `json:"created_at"`
}

func (SponsorLead) TableName() string {
	return "sponsor_leads"
}

func (s *SponsorLead) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Subscriber is a newsletter signup
type Subscriber struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}

func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
