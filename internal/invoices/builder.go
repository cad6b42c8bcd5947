package invoices

import (
	"fmt"
	"math"
	"strings"
	"time"

	"conferly/internal/bookings"
	"conferly/internal/shared/apperrors"
	"conferly/internal/shared/config"
)

// LineItem is one invoice row
type LineItem struct {
	Description string
	Qty         int
	UnitPrice   float64
	UnitTax     float64
	Amount      float64
}

// Invoice is the fully assembled document model handed to the renderer
type Invoice struct {
	Number     string
	IssueDate  time.Time
	DueDate    time.Time
	BillToName string
	BillToCo   string
	Items      []LineItem
	Subtotal   float64
	Discount   float64
	Tax        float64
	Total      float64
	Currency   string
	Recipients []string
	BookingID  string
}

// Build assembles the invoice for a confirmed booking. Delegates are
// grouped by pass type; unit price and unit tax are the booking
// subtotal and tax split evenly across all delegates, rounded to two
// decimals.
func Build(booking *bookings.Booking, cfg config.InvoiceConfig) (*Invoice, error) {
	inv := &Invoice{
		Number:    invoiceNumber(booking),
		IssueDate: time.Now(),
		Subtotal:  booking.Subtotal,
		Discount:  booking.Discount,
		Tax:       booking.Tax,
		Total:     booking.Total,
		Currency:  booking.Currency,
		BookingID: booking.ID.String(),
	}
	inv.DueDate = inv.IssueDate.AddDate(0, 0, cfg.DueDays)

	switch booking.Type {
	case bookings.TypePass:
		if len(booking.Delegates) == 0 {
			return nil, apperrors.NewDataError(booking.ID.String(), "confirmed pass booking has no delegates")
		}
		count := len(booking.Delegates)
		unitPrice := round2(booking.Subtotal / float64(count))
		unitTax := round2(booking.Tax / float64(count))

		inv.BillToName = booking.Delegates[0].FirstName + " " + booking.Delegates[0].LastName
		inv.BillToCo = booking.Delegates[0].Company

		// Group by pass type, first-seen order
		var order []string
		groups := make(map[string]int)
		for _, d := range booking.Delegates {
			if _, seen := groups[d.PassType]; !seen {
				order = append(order, d.PassType)
			}
			groups[d.PassType]++
			inv.Recipients = appendUnique(inv.Recipients, d.Email)
		}
		for _, passType := range order {
			qty := groups[passType]
			inv.Items = append(inv.Items, LineItem{
				Description: passType + " Pass",
				Qty:         qty,
				UnitPrice:   unitPrice,
				UnitTax:     unitTax,
				Amount:      round2(unitPrice * float64(qty)),
			})
		}

	case bookings.TypeSponsorship:
		if booking.Sponsorship == nil {
			return nil, apperrors.NewDataError(booking.ID.String(), "confirmed sponsorship booking has no sponsorship details")
		}
		sp := booking.Sponsorship
		inv.BillToName = sp.FirstName + " " + sp.LastName
		inv.BillToCo = sp.Company
		inv.Recipients = appendUnique(inv.Recipients, sp.Email)
		inv.Items = append(inv.Items, LineItem{
			Description: sp.Package + " Sponsorship",
			Qty:         1,
			UnitPrice:   round2(booking.Subtotal),
			UnitTax:     round2(booking.Tax),
			Amount:      round2(booking.Subtotal),
		})

	case bookings.TypeSpeakerPass:
		if len(booking.Speakers) == 0 {
			return nil, apperrors.NewDataError(booking.ID.String(), "confirmed speakerpass booking has no speakers")
		}
		count := len(booking.Speakers)
		unitPrice := round2(booking.Subtotal / float64(count))
		unitTax := round2(booking.Tax / float64(count))

		inv.BillToName = booking.Speakers[0].FirstName + " " + booking.Speakers[0].LastName
		inv.BillToCo = booking.Speakers[0].Company
		for _, sp := range booking.Speakers {
			inv.Recipients = appendUnique(inv.Recipients, sp.Email)
			inv.Items = append(inv.Items, LineItem{
				Description: sp.Package + " (" + sp.FirstName + " " + sp.LastName + ")",
				Qty:         1,
				UnitPrice:   unitPrice,
				UnitTax:     unitTax,
				Amount:      unitPrice,
			})
		}

	default:
		return nil, apperrors.NewDataError(booking.ID.String(), "unknown booking type "+string(booking.Type))
	}

	return inv, nil
}

// invoiceNumber derives a stable human-readable number from the
// booking ID so regenerating the invoice keeps the same number.
func invoiceNumber(booking *bookings.Booking) string {
	short := strings.ToUpper(strings.ReplaceAll(booking.ID.String(), "-", ""))[:8]
	return fmt.Sprintf("INV-%s-%s", booking.CreatedAt.Format("20060102"), short)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func appendUnique(list []string, email string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, email) {
			return list
		}
	}
	return append(list, email)
}
