package bookings

import (
	"context"
	"fmt"
	"time"

	"conferly/internal/shared/apperrors"
	"conferly/pkg/cache"

	"github.com/google/uuid"
)

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	ListBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error)
}

type service struct {
	repo    Repository
	pricing *PricingEngine
	cache   cache.Service
}

// NewService creates a new booking service instance
func NewService(repo Repository, pricing *PricingEngine, cacheService cache.Service) Service {
	return &service{
		repo:    repo,
		pricing: pricing,
		cache:   cacheService,
	}
}

// CreateBooking validates the type-specific participant slot, prices the
// booking and persists it as pending. Validation failures name the
// offending field and nothing is persisted.
func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	bookingType := Type(req.Type)
	if !bookingType.IsValid() {
		return nil, apperrors.NewValidationError("type", "Invalid booking type")
	}

	booking := &Booking{
		Type:   bookingType,
		Status: StatusPending,
		Paid:   false,
	}

	switch bookingType {
	case TypePass:
		if len(req.Delegates) == 0 {
			return nil, apperrors.NewValidationError("delegates", "At least one delegate is required for a pass booking")
		}
		for _, d := range req.Delegates {
			booking.Delegates = append(booking.Delegates, Delegate{
				FirstName: d.FirstName,
				LastName:  d.LastName,
				Company:   d.Company,
				Email:     d.Email,
				Mobile:    d.Mobile,
				PassType:  d.PassType,
			})
		}
		quote := s.pricing.QuotePass(req.Subtotal, req.Tax, len(req.Delegates))
		applyQuote(booking, quote)

	case TypeSponsorship:
		if err := validateSponsorship(req.Sponsorship); err != nil {
			return nil, err
		}
		booking.Sponsorship = &Sponsorship{
			FirstName: req.Sponsorship.FirstName,
			LastName:  req.Sponsorship.LastName,
			Company:   req.Sponsorship.Company,
			Email:     req.Sponsorship.Email,
			Package:   req.Sponsorship.Package,
		}
		quote := s.pricing.QuoteFlat(req.Total)
		applyQuote(booking, quote)

	case TypeSpeakerPass:
		if len(req.Speakerpass) == 0 {
			return nil, apperrors.NewValidationError("speakerpass", "At least one speaker is required for a speakerpass booking")
		}
		for _, sp := range req.Speakerpass {
			pkg := sp.Package
			if pkg == "" {
				pkg = "Speaker Pass"
			}
			booking.Speakers = append(booking.Speakers, Speaker{
				FirstName: sp.FirstName,
				LastName:  sp.LastName,
				Company:   sp.Company,
				Email:     sp.Email,
				Topic:     sp.Topic,
				Package:   pkg,
			})
		}
		quote := s.pricing.QuoteFlat(req.Total)
		applyQuote(booking, quote)
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.cache != nil {
		// Drop cached listing pages so the new booking shows up
		_ = s.cache.DeletePattern(ctx, cache.BookingListPattern())
	}

	return booking, nil
}

// GetBooking retrieves a booking by ID, cache-aside when a cache is wired
func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	if s.cache == nil {
		return s.repo.GetBookingByID(ctx, bookingID)
	}

	var booking Booking
	err := s.cache.GetOrSet(ctx, cache.BookingKey(bookingID.String()), 5*time.Minute, func() (interface{}, error) {
		return s.repo.GetBookingByID(ctx, bookingID)
	}, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings returns the paginated admin listing, newest first.
// Pages are cached briefly and invalidated on creation and confirmation.
func (s *service) ListBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	if s.cache == nil {
		return s.listBookings(ctx, query)
	}

	var resp BookingListResponse
	key := cache.BookingListKey(query.Status, query.Type, query.Page, query.Limit)
	err := s.cache.GetOrSet(ctx, key, time.Minute, func() (interface{}, error) {
		return s.listBookings(ctx, query)
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) listBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error) {
	results, totalCount, err := s.repo.GetAllBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return &BookingListResponse{
		Bookings:   results,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}

func applyQuote(booking *Booking, quote Quote) {
	booking.Subtotal = quote.Subtotal
	booking.Discount = quote.Discount
	booking.Tax = quote.Tax
	booking.Total = quote.Total
	booking.Currency = quote.Currency
}

func validateSponsorship(sp *SponsorshipRequest) error {
	if sp == nil {
		return apperrors.NewValidationError("sponsorship", "Missing sponsorship details")
	}
	if sp.FirstName == "" {
		return apperrors.NewValidationError("sponsorship.first_name", "Sponsorship first name is required")
	}
	if sp.LastName == "" {
		return apperrors.NewValidationError("sponsorship.last_name", "Sponsorship last name is required")
	}
	if sp.Email == "" {
		return apperrors.NewValidationError("sponsorship.email", "Sponsorship email is required")
	}
	if sp.Package == "" {
		return apperrors.NewValidationError("sponsorship.package", "Sponsorship package is required")
	}
	return nil
}
