package bookings

import (
	"conferly/internal/shared/config"
)

// Quote holds the monetary breakdown of a booking in a single currency.
// Invariant: Total = Subtotal - Discount + Tax.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// PricingEngine computes discounts and currency-converted amounts. It is
// stateless; the fixed conversion rate comes from configuration injected
// at construction time.
type PricingEngine struct {
	cfg config.PricingConfig
}

// NewPricingEngine creates a pricing engine with the given configuration
func NewPricingEngine(cfg config.PricingConfig) *PricingEngine {
	return &PricingEngine{cfg: cfg}
}

// DiscountRate returns the group discount rate for a pass booking.
// Discounts apply to the subtotal only, never to tax.
func (e *PricingEngine) DiscountRate(delegateCount int) float64 {
	switch {
	case delegateCount >= 5:
		return 0.20
	case delegateCount >= 3:
		return 0.15
	case delegateCount >= 2:
		return 0.10
	default:
		return 0
	}
}

// QuotePass prices a delegate-pass booking from subtotal and tax
func (e *PricingEngine) QuotePass(subtotal, tax float64, delegateCount int) Quote {
	discount := subtotal * e.DiscountRate(delegateCount)
	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    subtotal - discount + tax,
		Currency: e.cfg.BaseCurrency,
	}
}

// QuoteFlat prices a sponsorship or speaker-pass booking: the total is
// caller-supplied and carries no discount or tax breakdown.
func (e *PricingEngine) QuoteFlat(total float64) Quote {
	return Quote{
		Subtotal: total,
		Discount: 0,
		Tax:      0,
		Total:    total,
		Currency: e.cfg.BaseCurrency,
	}
}

// Convert multiplies every monetary field by rate and switches the
// currency tag. Applying the rate uniformly preserves the total
// invariant in the target currency.
func (e *PricingEngine) Convert(q Quote, rate float64, currency string) Quote {
	return Quote{
		Subtotal: q.Subtotal * rate,
		Discount: q.Discount * rate,
		Tax:      q.Tax * rate,
		Total:    q.Total * rate,
		Currency: currency,
	}
}

// USDToINRRate exposes the configured fixed conversion rate for the
// gateway adapters.
func (e *PricingEngine) USDToINRRate() float64 {
	return e.cfg.USDToINRRate
}
