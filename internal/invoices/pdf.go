package invoices

import (
	"fmt"

	sharedconfig "conferly/internal/shared/config"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// RenderPDF renders the invoice document as PDF bytes
func RenderPDF(inv *Invoice, cfg sharedconfig.InvoiceConfig) ([]byte, error) {
	builder := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		})

	m := maroto.New(builder.Build())

	if cfg.LogoPath != "" {
		m.AddRow(30,
			image.NewFromFileCol(3, cfg.LogoPath, props.Rect{
				Center:  false,
				Percent: 80,
			}),
			col.New(9),
		)
	}

	m.AddRow(10,
		text.NewCol(12, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Invoice number: "+inv.Number, props.Text{Top: 0}),
			text.New("Date of issue: "+inv.IssueDate.Format("02 Jan 2006"), props.Text{Top: 4}),
			text.New("Date due: "+inv.DueDate.Format("02 Jan 2006"), props.Text{Top: 8}),
			text.New("Booking reference: "+inv.BookingID, props.Text{Top: 12}),
		),
		col.New(6),
	)

	m.AddRow(35,
		col.New(6).Add(
			text.New(cfg.CompanyName, props.Text{Style: fontstyle.Bold}),
			text.New(cfg.CompanyAddress, props.Text{Top: 5}),
			text.New("Tax ID: "+cfg.TaxID, props.Text{Top: 15}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(inv.BillToName, props.Text{Top: 5}),
			text.New(inv.BillToCo, props.Text{Top: 9}),
		),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit tax", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range inv.Items {
		m.AddRow(12,
			text.NewCol(5, item.Description, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.UnitPrice, inv.Currency), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.UnitTax, inv.Currency), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.Amount, inv.Currency), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, money(inv.Subtotal, inv.Currency), props.Text{Size: 9, Align: align.Right}),
	)
	if inv.Discount > 0 {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Discount", props.Text{Size: 9}),
			text.NewCol(2, "-"+money(inv.Discount, inv.Currency), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Tax", props.Text{Size: 9}),
		text.NewCol(2, money(inv.Tax, inv.Currency), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, money(inv.Total, inv.Currency), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	m.AddRow(25,
		text.NewCol(12, "Payable by bank transfer. "+cfg.BankDetails, props.Text{
			Size: 9,
			Top:  5,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return doc.GetBytes(), nil
}

func money(v float64, currency string) string {
	return fmt.Sprintf("%.2f %s", v, currency)
}
