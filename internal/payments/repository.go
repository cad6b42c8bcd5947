package payments

import (
	"context"
	"errors"
	"fmt"

	"conferly/internal/bookings"
	"conferly/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// ConfirmWithRazorpay flips the booking to confirmed and records the
	// payment in one transaction. Confirmation is conditional on the
	// booking still being pending.
	ConfirmWithRazorpay(ctx context.Context, bookingID uuid.UUID, payment *RazorpayPayment) error
	ConfirmWithPaypal(ctx context.Context, bookingID uuid.UUID, payment *PaypalPayment) error

	GetRazorpayPaymentByOrderID(ctx context.Context, orderID string) (*RazorpayPayment, error)
	GetPaypalPaymentByOrderID(ctx context.Context, orderID string) (*PaypalPayment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ConfirmWithRazorpay(ctx context.Context, bookingID uuid.UUID, payment *RazorpayPayment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.confirmBooking(tx, bookingID, bookings.PaymentMethodRazorpay, float64(payment.AmountPaise)/100); err != nil {
			return err
		}
		return tx.Create(payment).Error
	})
}

func (r *repository) ConfirmWithPaypal(ctx context.Context, bookingID uuid.UUID, payment *PaypalPayment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.confirmBooking(tx, bookingID, bookings.PaymentMethodPaypal, payment.Amount); err != nil {
			return err
		}
		return tx.Create(payment).Error
	})
}

// confirmBooking performs the compare-and-set transition from pending
// to confirmed. Zero rows affected means the booking either does not
// exist or was already confirmed; the two are distinguished with a
// follow-up read inside the same transaction.
func (r *repository) confirmBooking(tx *gorm.DB, bookingID uuid.UUID, method string, amountPaid float64) error {
	result := tx.Model(&bookings.Booking{}).
		Where("id = ? AND status = ?", bookingID, bookings.StatusPending).
		Updates(map[string]interface{}{
			"status":         bookings.StatusConfirmed,
			"paid":           true,
			"payment_method": method,
			"amount_paid":    amountPaid,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&bookings.Booking{}).Where("id = ?", bookingID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
		}
		return apperrors.ErrAlreadyConfirmed
	}

	return nil
}

func (r *repository) GetRazorpayPaymentByOrderID(ctx context.Context, orderID string) (*RazorpayPayment, error) {
	var payment RazorpayPayment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("razorpay payment %s: %w", orderID, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repository) GetPaypalPaymentByOrderID(ctx context.Context, orderID string) (*PaypalPayment, error) {
	var payment PaypalPayment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("paypal payment %s: %w", orderID, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &payment, nil
}
