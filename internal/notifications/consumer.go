package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"conferly/internal/invoices"
	"conferly/internal/shared/config"

	"github.com/IBM/sarama"
)

// InvoiceConsumer consumes invoice jobs and drives invoice delivery
type InvoiceConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
}

type kafkaInvoiceConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        config.KafkaConfig
	invoiceSvc    invoices.Service
	producer      InvoiceProducer
	wg            sync.WaitGroup
	cancel        context.CancelFunc
}

// NewKafkaInvoiceConsumer creates a consumer group over the invoice topic
func NewKafkaInvoiceConsumer(cfg config.KafkaConfig, invoiceSvc invoices.Service, producer InvoiceProducer) (InvoiceConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.MaxProcessingTime = 5 * time.Minute
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaInvoiceConsumer{
		consumerGroup: consumerGroup,
		config:        cfg,
		invoiceSvc:    invoiceSvc,
		producer:      producer,
	}, nil
}

func (c *kafkaInvoiceConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	ctx, c.cancel = context.WithCancel(ctx)
	topics := []string{c.config.InvoiceTopic}

	log.Printf("📥 Starting %d invoice consumer workers for topics: %v", numWorkers, topics)

	go c.handleErrors()

	for i := 0; i < numWorkers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(ctx, workerID, topics)
		}(i)
	}

	return nil
}

func (c *kafkaInvoiceConsumer) runWorker(ctx context.Context, workerID int, topics []string) {
	handler := &invoiceJobHandler{
		workerID:   workerID,
		invoiceSvc: c.invoiceSvc,
		producer:   c.producer,
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("📥 Worker %d shutting down", workerID)
			return
		default:
			if err := c.consumerGroup.Consume(ctx, topics, handler); err != nil {
				log.Printf("📥 Worker %d error consuming messages: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *kafkaInvoiceConsumer) handleErrors() {
	for err := range c.consumerGroup.Errors() {
		log.Printf("📥 Consumer group error: %v", err)
	}
}

func (c *kafkaInvoiceConsumer) Stop() error {
	log.Println("📥 Stopping invoice consumer...")
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()

	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	log.Println("📥 Invoice consumer stopped")
	return nil
}

type invoiceJobHandler struct {
	workerID   int
	invoiceSvc invoices.Service
	producer   InvoiceProducer
}

func (h *invoiceJobHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session started", h.workerID)
	return nil
}

func (h *invoiceJobHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session ended", h.workerID)
	return nil
}

func (h *invoiceJobHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			if err := h.processMessage(session.Context(), message); err != nil {
				log.Printf("📥 Worker %d: Error processing message: %v", h.workerID, err)
			}
			// Mark regardless; failed jobs went to the dead letter topic
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *invoiceJobHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	log.Printf("📥 Worker %d: Processing invoice job from topic %s, partition %d, offset %d",
		h.workerID, message.Topic, message.Partition, message.Offset)

	job, err := InvoiceJobFromJSON(message.Value)
	if err != nil {
		return fmt.Errorf("failed to unmarshal invoice job: %w", err)
	}

	if err := h.executeWithRetry(ctx, job); err != nil {
		if dlqErr := h.producer.PublishToDeadLetter(ctx, job, err); dlqErr != nil {
			log.Printf("📥 Worker %d: Failed to park job in dead letter topic: %v", h.workerID, dlqErr)
		}
		return err
	}

	log.Printf("📧 Worker %d: Invoice delivered for booking %s", h.workerID, job.BookingID)
	return nil
}

func (h *invoiceJobHandler) executeWithRetry(ctx context.Context, job *InvoiceJob) error {
	const maxRetries = 3
	backoff := time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		job.Attempt = attempt
		err := h.invoiceSvc.GenerateAndSend(ctx, job.BookingID)
		if err == nil {
			if attempt > 0 {
				log.Printf("📥 Worker %d: Invoice job succeeded after %d retries", h.workerID, attempt)
			}
			return nil
		}

		if attempt == maxRetries {
			log.Printf("📥 Worker %d: Invoice job failed after %d attempts: %v", h.workerID, maxRetries, err)
			return err
		}

		delay := backoff * time.Duration(1<<attempt)
		log.Printf("📥 Worker %d: Retry %d for invoice job after %v", h.workerID, attempt+1, delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}
