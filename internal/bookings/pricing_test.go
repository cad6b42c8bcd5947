package bookings_test

import (
	"testing"

	"conferly/internal/bookings"
	"conferly/internal/shared/config"

	"github.com/stretchr/testify/assert"
)

func newEngine() *bookings.PricingEngine {
	return bookings.NewPricingEngine(config.PricingConfig{
		BaseCurrency: "USD",
		USDToINRRate: 83,
	})
}

func TestDiscountRate_Tiers(t *testing.T) {
	engine := newEngine()

	tests := []struct {
		delegates int
		rate      float64
	}{
		{0, 0},
		{1, 0},
		{2, 0.10},
		{3, 0.15},
		{4, 0.15},
		{5, 0.20},
		{12, 0.20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.rate, engine.DiscountRate(tt.delegates), "delegates=%d", tt.delegates)
	}
}

func TestQuotePass_AppliesDiscountToSubtotalOnly(t *testing.T) {
	engine := newEngine()

	quote := engine.QuotePass(300, 30, 3)

	assert.Equal(t, 300.0, quote.Subtotal)
	assert.Equal(t, 45.0, quote.Discount)
	assert.Equal(t, 30.0, quote.Tax)
	assert.Equal(t, 285.0, quote.Total)
	assert.Equal(t, "USD", quote.Currency)
}

func TestQuotePass_TotalInvariant(t *testing.T) {
	engine := newEngine()

	for delegates := 1; delegates <= 8; delegates++ {
		quote := engine.QuotePass(250, 25, delegates)
		assert.InDelta(t, quote.Total, quote.Subtotal-quote.Discount+quote.Tax, 1e-9)
	}
}

func TestQuoteFlat_NoDiscountNoTax(t *testing.T) {
	engine := newEngine()

	quote := engine.QuoteFlat(5000)

	assert.Equal(t, 5000.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.Discount)
	assert.Equal(t, 0.0, quote.Tax)
	assert.Equal(t, 5000.0, quote.Total)
}

func TestConvert_UniformRatePreservesInvariant(t *testing.T) {
	engine := newEngine()

	usd := engine.QuotePass(300, 30, 5)
	inr := engine.Convert(usd, 83, "INR")

	assert.Equal(t, "INR", inr.Currency)
	assert.InDelta(t, usd.Total*83, inr.Total, 1e-9)
	assert.InDelta(t, inr.Total, inr.Subtotal-inr.Discount+inr.Tax, 1e-6)
}
