package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"conferly/internal/shared/config"

	"github.com/IBM/sarama"
)

// InvoiceProducer publishes invoice jobs for asynchronous processing
type InvoiceProducer interface {
	PublishInvoiceJob(ctx context.Context, job *InvoiceJob) error
	PublishToDeadLetter(ctx context.Context, job *InvoiceJob, cause error) error
	Close() error
}

// KafkaInvoiceProducer publishes invoice jobs to Kafka
type KafkaInvoiceProducer struct {
	producer sarama.SyncProducer
	config   config.KafkaConfig
}

// NewKafkaInvoiceProducer creates a new Kafka invoice producer
func NewKafkaInvoiceProducer(cfg config.KafkaConfig) (InvoiceProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps jobs for one booking on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka invoice producer created successfully")
	return &KafkaInvoiceProducer{
		producer: producer,
		config:   cfg,
	}, nil
}

// PublishInvoiceJob publishes a single invoice job
func (p *KafkaInvoiceProducer) PublishInvoiceJob(ctx context.Context, job *InvoiceJob) error {
	messageBytes, err := job.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal invoice job: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.InvoiceTopic,
		Key:       sarama.StringEncoder(job.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   p.createHeaders(job),
		Timestamp: job.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send invoice job to Kafka: %w", err)
	}

	log.Printf("📤 Invoice job published - Topic: %s, Partition: %d, Offset: %d, Booking: %s",
		p.config.InvoiceTopic, partition, offset, job.BookingID)

	return nil
}

// PublishToDeadLetter parks a job that exhausted its retries
func (p *KafkaInvoiceProducer) PublishToDeadLetter(ctx context.Context, job *InvoiceJob, cause error) error {
	job.LastError = cause.Error()

	messageBytes, err := job.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal dead letter job: %w", err)
	}

	headers := p.createHeaders(job)
	headers = append(headers, sarama.RecordHeader{
		Key:   []byte("failure_reason"),
		Value: []byte(cause.Error()),
	})

	message := &sarama.ProducerMessage{
		Topic:   p.config.DeadLetterTopic,
		Key:     sarama.StringEncoder(job.GetPartitionKey()),
		Value:   sarama.ByteEncoder(messageBytes),
		Headers: headers,
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		return fmt.Errorf("failed to send job to dead letter topic: %w", err)
	}

	log.Printf("📤 Invoice job for booking %s parked in dead letter topic", job.BookingID)
	return nil
}

func (p *KafkaInvoiceProducer) createHeaders(job *InvoiceJob) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("job_id"), Value: []byte(job.ID.String())},
		{Key: []byte("booking_id"), Value: []byte(job.BookingID.String())},
		{Key: []byte("attempt"), Value: []byte(fmt.Sprintf("%d", job.Attempt))},
		{Key: []byte("producer"), Value: []byte("conferly-payments")},
		{Key: []byte("created_at"), Value: []byte(job.CreatedAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (p *KafkaInvoiceProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("📤 Kafka invoice producer closed")
	}
	return nil
}
