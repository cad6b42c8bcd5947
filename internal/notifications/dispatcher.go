package notifications

import (
	"context"
	"time"

	"conferly/internal/invoices"
	"conferly/pkg/logger"

	"github.com/google/uuid"
)

// KafkaInvoiceDispatcher hands confirmed bookings to the invoice topic.
// When the publish fails the job runs inline instead so a Kafka outage
// never loses an invoice.
type KafkaInvoiceDispatcher struct {
	producer InvoiceProducer
	fallback *InlineInvoiceDispatcher
	log      *logger.Logger
}

func NewKafkaInvoiceDispatcher(producer InvoiceProducer, invoiceSvc invoices.Service, log *logger.Logger) *KafkaInvoiceDispatcher {
	return &KafkaInvoiceDispatcher{
		producer: producer,
		fallback: NewInlineInvoiceDispatcher(invoiceSvc, log),
		log:      log,
	}
}

func (d *KafkaInvoiceDispatcher) DispatchInvoice(ctx context.Context, bookingID uuid.UUID) {
	job := NewInvoiceJob(bookingID)
	if err := d.producer.PublishInvoiceJob(ctx, job); err != nil {
		d.log.ErrorWithContext(ctx, "Failed to publish invoice job, running inline", err, map[string]interface{}{
			"booking_id": bookingID.String(),
		})
		d.fallback.DispatchInvoice(ctx, bookingID)
		return
	}
	d.log.LogInvoiceDispatched(ctx, bookingID.String(), "kafka")
}

// InlineInvoiceDispatcher generates the invoice in a detached
// goroutine. Used directly when Kafka is disabled.
type InlineInvoiceDispatcher struct {
	invoiceSvc invoices.Service
	log        *logger.Logger
}

func NewInlineInvoiceDispatcher(invoiceSvc invoices.Service, log *logger.Logger) *InlineInvoiceDispatcher {
	return &InlineInvoiceDispatcher{
		invoiceSvc: invoiceSvc,
		log:        log,
	}
}

func (d *InlineInvoiceDispatcher) DispatchInvoice(ctx context.Context, bookingID uuid.UUID) {
	d.log.LogInvoiceDispatched(ctx, bookingID.String(), "inline")

	// Detached from the request; the payment response does not wait for
	// invoice delivery.
	go func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := d.invoiceSvc.GenerateAndSend(jobCtx, bookingID); err != nil {
			d.log.ErrorWithContext(jobCtx, "Inline invoice generation failed", err, map[string]interface{}{
				"booking_id": bookingID.String(),
			})
		}
	}()
}
