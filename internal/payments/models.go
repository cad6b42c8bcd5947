package payments

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RazorpayPayment is the append-only audit record for a Razorpay
// confirmation. AmountPaise and ConversionRate capture the exact INR
// charge derived from the USD booking total.
type RazorpayPayment struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID      uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`
	OrderID        string    `json:"order_id" gorm:"type:varchar(64);not null;uniqueIndex"`
	PaymentID      string    `json:"payment_id" gorm:"type:varchar(64);not null"`
	Signature      string    `json:"signature" gorm:"type:varchar(128);not null"`
	AmountPaise    int64     `json:"amount_paise" gorm:"not null"`
	Currency       string    `json:"currency" gorm:"type:varchar(3);not null"`
	ConversionRate float64   `json:"conversion_rate" gorm:"not null"`
	Status         string    `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time `json:"created_at"`
}

func (RazorpayPayment) TableName() string {
	return "razorpay_payments"
}

func (p *RazorpayPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PaypalPayment is the append-only audit record for a PayPal capture.
// Details keeps the raw capture response for reconciliation.
type PaypalPayment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`
	OrderID   string    `json:"order_id" gorm:"type:varchar(64);not null;uniqueIndex"`
	CaptureID string    `json:"capture_id" gorm:"type:varchar(64)"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Currency  string    `json:"currency" gorm:"type:varchar(3);not null"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null"`
	Details   string    `json:"-" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (PaypalPayment) TableName() string {
	return "paypal_payments"
}

func (p *PaypalPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
