package invoices_test

import (
	"testing"
	"time"

	"conferly/internal/bookings"
	"conferly/internal/invoices"
	"conferly/internal/shared/apperrors"
	"conferly/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceConfig() config.InvoiceConfig {
	return config.InvoiceConfig{
		CompanyName: "Conferly Events Private Limited",
		DueDays:     15,
	}
}

func confirmedPassBooking() *bookings.Booking {
	return &bookings.Booking{
		ID:        uuid.New(),
		Type:      bookings.TypePass,
		Status:    bookings.StatusConfirmed,
		Subtotal:  300,
		Discount:  45,
		Tax:       30,
		Total:     285,
		Currency:  "USD",
		CreatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Delegates: []bookings.Delegate{
			{FirstName: "Dana", LastName: "Ives", Company: "Acme", Email: "dana@example.com", PassType: "VIP"},
			{FirstName: "Sam", LastName: "Reed", Company: "Acme", Email: "sam@example.com", PassType: "VIP"},
			{FirstName: "Ash", LastName: "Cole", Company: "Acme", Email: "ash@example.com", PassType: "General"},
		},
	}
}

func TestBuild_GroupsDelegatesByPassType(t *testing.T) {
	booking := confirmedPassBooking()

	inv, err := invoices.Build(booking, invoiceConfig())
	require.NoError(t, err)

	require.Len(t, inv.Items, 2)

	vip := inv.Items[0]
	assert.Equal(t, "VIP Pass", vip.Description)
	assert.Equal(t, 2, vip.Qty)
	assert.Equal(t, 100.0, vip.UnitPrice)
	assert.Equal(t, 10.0, vip.UnitTax)
	assert.Equal(t, 200.0, vip.Amount)

	general := inv.Items[1]
	assert.Equal(t, "General Pass", general.Description)
	assert.Equal(t, 1, general.Qty)
	assert.Equal(t, 100.0, general.UnitPrice)
	assert.Equal(t, 100.0, general.Amount)
}

func TestBuild_UnitPriceRoundsToTwoDecimals(t *testing.T) {
	booking := confirmedPassBooking()
	booking.Subtotal = 100
	booking.Tax = 10

	inv, err := invoices.Build(booking, invoiceConfig())
	require.NoError(t, err)

	// 100 / 3 delegates
	assert.Equal(t, 33.33, inv.Items[0].UnitPrice)
	assert.Equal(t, 3.33, inv.Items[0].UnitTax)
}

func TestBuild_RecipientsDeduped(t *testing.T) {
	booking := confirmedPassBooking()
	booking.Delegates[1].Email = "DANA@example.com"

	inv, err := invoices.Build(booking, invoiceConfig())
	require.NoError(t, err)

	assert.Len(t, inv.Recipients, 2)
}

func TestBuild_DueDateFollowsConfig(t *testing.T) {
	inv, err := invoices.Build(confirmedPassBooking(), invoiceConfig())
	require.NoError(t, err)

	assert.Equal(t, inv.IssueDate.AddDate(0, 0, 15), inv.DueDate)
}

func TestBuild_NumberDerivedFromBooking(t *testing.T) {
	booking := confirmedPassBooking()

	first, err := invoices.Build(booking, invoiceConfig())
	require.NoError(t, err)
	second, err := invoices.Build(booking, invoiceConfig())
	require.NoError(t, err)

	assert.Equal(t, first.Number, second.Number)
	assert.Contains(t, first.Number, "INV-20260314-")
}

func TestBuild_PassWithoutDelegatesIsDataError(t *testing.T) {
	booking := confirmedPassBooking()
	booking.Delegates = nil

	_, err := invoices.Build(booking, invoiceConfig())
	require.Error(t, err)

	var dataErr *apperrors.DataError
	assert.ErrorAs(t, err, &dataErr)
}

func TestBuild_SponsorshipSingleLine(t *testing.T) {
	booking := &bookings.Booking{
		ID:        uuid.New(),
		Type:      bookings.TypeSponsorship,
		Status:    bookings.StatusConfirmed,
		Subtotal:  10000,
		Total:     10000,
		Currency:  "USD",
		CreatedAt: time.Now(),
		Sponsorship: &bookings.Sponsorship{
			FirstName: "Robin", LastName: "Sage", Company: "Globex",
			Email: "robin@example.com", Package: "Gold",
		},
	}

	inv, err := invoices.Build(booking, invoiceConfig())
	require.NoError(t, err)

	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Gold Sponsorship", inv.Items[0].Description)
	assert.Equal(t, 1, inv.Items[0].Qty)
	assert.Equal(t, 10000.0, inv.Items[0].Amount)
	assert.Equal(t, []string{"robin@example.com"}, inv.Recipients)
}

func TestBuild_SpeakerPassLinePerSpeaker(t *testing.T) {
	booking := &bookings.Booking{
		ID:        uuid.New(),
		Type:      bookings.TypeSpeakerPass,
		Status:    bookings.StatusConfirmed,
		Subtotal:  300,
		Tax:       30,
		Total:     330,
		Currency:  "USD",
		CreatedAt: time.Now(),
		Speakers: []bookings.Speaker{
			{FirstName: "Kai", LastName: "Lund", Email: "kai@example.com", Package: "Speaker Pass"},
			{FirstName: "Ada", LastName: "Nour", Email: "ada@example.com", Package: "Speaker Pass"},
		},
	}

	inv, err := invoices.Build(booking, invoiceConfig())
	require.NoError(t, err)

	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Speaker Pass (Kai Lund)", inv.Items[0].Description)
	assert.Equal(t, 1, inv.Items[0].Qty)
	assert.Equal(t, 150.0, inv.Items[0].UnitPrice)
	assert.Equal(t, 15.0, inv.Items[0].UnitTax)
	assert.Equal(t, "Speaker Pass (Ada Nour)", inv.Items[1].Description)
	assert.Len(t, inv.Recipients, 2)
}

func TestRenderPDF_ProducesDocument(t *testing.T) {
	inv, err := invoices.Build(confirmedPassBooking(), invoiceConfig())
	require.NoError(t, err)

	pdfBytes, err := invoices.RenderPDF(inv, invoiceConfig())
	require.NoError(t, err)

	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
