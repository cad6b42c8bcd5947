package leads

import (
	"context"
	"fmt"

	"conferly/internal/shared/apperrors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateContact(ctx context.Context, contact *Contact) error
	CreateSpeakerLead(ctx context.Context, lead *SpeakerLead) error
	CreateSponsorLead(ctx context.Context, lead *SponsorLead) error
	CreateSubscriber(ctx context.Context, subscriber *Subscriber) error
	ListContacts(ctx context.Context) ([]Contact, error)
	ListSubscribers(ctx context.Context) ([]Subscriber, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateContact stores a contact message. The same person may write
// again with a new message; only an identical email and message pair
// is treated as a duplicate submission.
func (r *repository) CreateContact(ctx context.Context, contact *Contact) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&Contact{}).
		Where("email = ? AND message = ?", contact.Email, contact.Message).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("contact from %s: %w", contact.Email, apperrors.ErrDuplicate)
	}

	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *repository) CreateSpeakerLead(ctx context.Context, lead *SpeakerLead) error {
	return r.createDeduped(ctx, &SpeakerLead{}, lead.Email, func() error {
		return r.db.WithContext(ctx).Create(lead).Error
	})
}

func (r *repository) CreateSponsorLead(ctx context.Context, lead *SponsorLead) error {
	return r.createDeduped(ctx, &SponsorLead{}, lead.Email, func() error {
		return r.db.WithContext(ctx).Create(lead).Error
	})
}

func (r *repository) CreateSubscriber(ctx context.Context, subscriber *Subscriber) error {
	return r.createDeduped(ctx, &Subscriber{}, subscriber.Email, func() error {
		return r.db.WithContext(ctx).Create(subscriber).Error
	})
}

// ListContacts returns all contact messages, newest first
func (r *repository) ListContacts(ctx context.Context) ([]Contact, error) {
	var contacts []Contact
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&contacts).Error
	return contacts, err
}

// ListSubscribers returns all newsletter subscribers, newest first
func (r *repository) ListSubscribers(ctx context.Context) ([]Subscriber, error) {
	var subscribers []Subscriber
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&subscribers).Error
	return subscribers, err
}

// createDeduped rejects a second submission with the same email
func (r *repository) createDeduped(ctx context.Context, model interface{}, email string, create func() error) error {
	var count int64
	err := r.db.WithContext(ctx).Model(model).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("lead %s: %w", email, apperrors.ErrDuplicate)
	}

	return create()
}
