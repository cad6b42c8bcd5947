package payments

import (
	"context"
	"fmt"
	"math"

	"conferly/internal/bookings"
	"conferly/internal/shared/apperrors"
	"conferly/pkg/cache"
	"conferly/pkg/logger"

	"github.com/google/uuid"
)

// InvoiceDispatcher hands a confirmed booking off for invoice
// generation and delivery. Dispatch happens after the confirming
// transaction commits and must never fail the payment flow.
type InvoiceDispatcher interface {
	DispatchInvoice(ctx context.Context, bookingID uuid.UUID)
}

// Service orchestrates the two gateway payment flows
type Service interface {
	CreateRazorpayOrder(ctx context.Context, req CreateOrderRequest) (*RazorpayOrderResponse, error)
	VerifyRazorpayPayment(ctx context.Context, req VerifyRazorpayRequest) (*ConfirmationResponse, error)
	CreatePayPalOrder(ctx context.Context, req CreateOrderRequest) (*PayPalOrderResponse, error)
	CapturePayPalOrder(ctx context.Context, req CapturePayPalRequest) (*ConfirmationResponse, error)
}

type service struct {
	repo        Repository
	bookingRepo bookings.Repository
	pricing     *bookings.PricingEngine
	razorpay    RazorpayClient
	paypal      PayPalClient
	dispatcher  InvoiceDispatcher
	cache       cache.Service
	log         *logger.Logger
}

func NewService(
	repo Repository,
	bookingRepo bookings.Repository,
	pricing *bookings.PricingEngine,
	razorpay RazorpayClient,
	paypal PayPalClient,
	dispatcher InvoiceDispatcher,
	cacheService cache.Service,
	log *logger.Logger,
) Service {
	return &service{
		repo:        repo,
		bookingRepo: bookingRepo,
		pricing:     pricing,
		razorpay:    razorpay,
		paypal:      paypal,
		dispatcher:  dispatcher,
		cache:       cacheService,
		log:         log,
	}
}

// CreateRazorpayOrder converts the USD booking total to integral paise
// at the fixed rate and opens a gateway order for it.
func (s *service) CreateRazorpayOrder(ctx context.Context, req CreateOrderRequest) (*RazorpayOrderResponse, error) {
	booking, err := s.loadPendingBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	rate := s.pricing.USDToINRRate()
	amountPaise := toPaise(booking.Total, rate)

	order, err := s.razorpay.CreateOrder(ctx, amountPaise, "INR", booking.ID.String())
	if err != nil {
		return nil, err
	}

	return &RazorpayOrderResponse{
		OrderID:     order.ID,
		AmountPaise: order.Amount,
		Currency:    order.Currency,
		KeyID:       s.razorpay.KeyID(),
		BookingID:   booking.ID.String(),
		USDTotal:    booking.Total,
	}, nil
}

// VerifyRazorpayPayment checks the callback signature before touching
// any state. A bad signature leaves the booking untouched; a valid one
// confirms it exactly once.
func (s *service) VerifyRazorpayPayment(ctx context.Context, req VerifyRazorpayRequest) (*ConfirmationResponse, error) {
	if err := s.razorpay.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		return nil, err
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperrors.NewValidationError("booking_id", "Invalid booking ID")
	}

	booking, err := s.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	rate := s.pricing.USDToINRRate()
	payment := &RazorpayPayment{
		BookingID:      bookingID,
		OrderID:        req.RazorpayOrderID,
		PaymentID:      req.RazorpayPaymentID,
		Signature:      req.RazorpaySignature,
		AmountPaise:    toPaise(booking.Total, rate),
		Currency:       "INR",
		ConversionRate: rate,
		Status:         "captured",
	}

	if err := s.repo.ConfirmWithRazorpay(ctx, bookingID, payment); err != nil {
		return nil, err
	}

	s.afterConfirm(ctx, bookingID, bookings.PaymentMethodRazorpay)

	return &ConfirmationResponse{
		BookingID:     bookingID.String(),
		Status:        bookings.StatusConfirmed.String(),
		PaymentMethod: bookings.PaymentMethodRazorpay,
	}, nil
}

// CreatePayPalOrder opens a CAPTURE-intent order for the USD total
func (s *service) CreatePayPalOrder(ctx context.Context, req CreateOrderRequest) (*PayPalOrderResponse, error) {
	booking, err := s.loadPendingBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	order, err := s.paypal.CreateOrder(ctx, booking.ID.String(), booking.Total, "USD")
	if err != nil {
		return nil, err
	}

	return &PayPalOrderResponse{
		OrderID:   order.ID,
		BookingID: booking.ID.String(),
		Amount:    booking.Total,
		Currency:  "USD",
	}, nil
}

// CapturePayPalOrder captures the approved order and confirms the
// booking only when the gateway reports the capture COMPLETED.
func (s *service) CapturePayPalOrder(ctx context.Context, req CapturePayPalRequest) (*ConfirmationResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperrors.NewValidationError("booking_id", "Invalid booking ID")
	}

	booking, err := s.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	capture, err := s.paypal.CaptureOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	payment := &PaypalPayment{
		BookingID: bookingID,
		OrderID:   capture.OrderID,
		CaptureID: capture.CaptureID,
		Amount:    booking.Total,
		Currency:  "USD",
		Status:    capture.Status,
		Details:   capture.Raw,
	}

	if err := s.repo.ConfirmWithPaypal(ctx, bookingID, payment); err != nil {
		return nil, err
	}

	s.afterConfirm(ctx, bookingID, bookings.PaymentMethodPaypal)

	return &ConfirmationResponse{
		BookingID:     bookingID.String(),
		Status:        bookings.StatusConfirmed.String(),
		PaymentMethod: bookings.PaymentMethodPaypal,
	}, nil
}

// afterConfirm runs the post-commit side effects: cache invalidation
// and invoice dispatch. Neither can fail the confirmed payment.
func (s *service) afterConfirm(ctx context.Context, bookingID uuid.UUID, method string) {
	s.log.LogBookingConfirmed(ctx, bookingID.String(), method)

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.BookingKey(bookingID.String())); err != nil {
			s.log.ErrorWithContext(ctx, "Failed to invalidate booking cache", err, map[string]interface{}{
				"booking_id": bookingID.String(),
			})
		}
		if err := s.cache.DeletePattern(ctx, cache.BookingListPattern()); err != nil {
			s.log.ErrorWithContext(ctx, "Failed to invalidate booking listing cache", err, map[string]interface{}{
				"booking_id": bookingID.String(),
			})
		}
	}

	if s.dispatcher != nil {
		s.dispatcher.DispatchInvoice(ctx, bookingID)
	}
}

func (s *service) loadPendingBooking(ctx context.Context, id string) (*bookings.Booking, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NewValidationError("booking_id", "Invalid booking ID")
	}

	booking, err := s.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.IsConfirmed() {
		return nil, fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrAlreadyConfirmed)
	}

	return booking, nil
}

// toPaise converts a USD amount to integral INR paise at the given
// rate, rounding half away from zero.
func toPaise(usd, rate float64) int64 {
	return int64(math.Round(usd * rate * 100))
}
