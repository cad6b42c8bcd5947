package invoices

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"conferly/internal/bookings"
	"conferly/internal/shared/config"
	"conferly/pkg/logger"

	"github.com/google/uuid"
)

// Mailer sends an invoice email with the PDF attached. Implemented by
// the notifications package.
type Mailer interface {
	SendWithAttachment(ctx context.Context, to, subject, htmlBody, attachmentName string, attachment []byte) error
}

// Service generates and delivers invoices for confirmed bookings
type Service interface {
	GenerateAndSend(ctx context.Context, bookingID uuid.UUID) error
}

type service struct {
	bookingRepo bookings.Repository
	mailer      Mailer
	invoiceCfg  config.InvoiceConfig
	adminEmail  string
	log         *logger.Logger
}

func NewService(bookingRepo bookings.Repository, mailer Mailer, invoiceCfg config.InvoiceConfig, adminEmail string, log *logger.Logger) Service {
	return &service{
		bookingRepo: bookingRepo,
		mailer:      mailer,
		invoiceCfg:  invoiceCfg,
		adminEmail:  adminEmail,
		log:         log,
	}
}

// GenerateAndSend builds the invoice for a confirmed booking, writes
// the PDF artifact to the output directory and emails it to every
// participant plus the admin copy. Send failures are collected so a
// retry re-attempts delivery without blocking the other recipients.
func (s *service) GenerateAndSend(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if !booking.IsConfirmed() {
		return fmt.Errorf("booking %s is not confirmed, refusing to invoice", bookingID)
	}

	inv, err := Build(booking, s.invoiceCfg)
	if err != nil {
		return err
	}

	pdfBytes, err := RenderPDF(inv, s.invoiceCfg)
	if err != nil {
		return fmt.Errorf("failed to render invoice %s: %w", inv.Number, err)
	}

	if err := s.persistArtifact(inv, pdfBytes); err != nil {
		// The artifact copy is best effort; email delivery still proceeds.
		s.log.ErrorWithContext(ctx, "Failed to persist invoice artifact", err, map[string]interface{}{
			"invoice": inv.Number,
		})
	}

	if s.mailer == nil {
		s.log.InfoWithContext(ctx, "Mailer not configured, invoice generated without delivery", map[string]interface{}{
			"invoice": inv.Number,
		})
		return nil
	}

	attachmentName := inv.Number + ".pdf"
	subject := fmt.Sprintf("Your invoice %s from %s", inv.Number, s.invoiceCfg.CompanyName)
	body := emailBody(inv, s.invoiceCfg)

	recipients := append([]string{}, inv.Recipients...)
	if s.adminEmail != "" {
		recipients = append(recipients, s.adminEmail)
	}

	var sendErrs []error
	for _, recipient := range recipients {
		if err := s.mailer.SendWithAttachment(ctx, recipient, subject, body, attachmentName, pdfBytes); err != nil {
			s.log.ErrorWithContext(ctx, "Failed to send invoice email", err, map[string]interface{}{
				"invoice":   inv.Number,
				"recipient": recipient,
			})
			sendErrs = append(sendErrs, fmt.Errorf("send to %s: %w", recipient, err))
		}
	}

	if len(sendErrs) > 0 {
		return errors.Join(sendErrs...)
	}

	s.log.InfoWithContext(ctx, "Invoice delivered", map[string]interface{}{
		"invoice":    inv.Number,
		"booking_id": bookingID.String(),
		"recipients": len(recipients),
	})

	return nil
}

func (s *service) persistArtifact(inv *Invoice, pdfBytes []byte) error {
	if s.invoiceCfg.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.invoiceCfg.OutputDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.invoiceCfg.OutputDir, inv.Number+".pdf")
	return os.WriteFile(path, pdfBytes, 0o644)
}

func emailBody(inv *Invoice, cfg config.InvoiceConfig) string {
	return fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>Thank you for your booking. Please find invoice <strong>%s</strong> attached.</p>
<p>Total due: <strong>%.2f %s</strong> by %s.</p>
<p>%s</p>
<p>Regards,<br/>%s</p>
</body></html>`,
		inv.BillToName,
		inv.Number,
		inv.Total, inv.Currency,
		inv.DueDate.Format("02 Jan 2006"),
		"Payable by bank transfer. "+cfg.BankDetails,
		cfg.CompanyName,
	)
}
