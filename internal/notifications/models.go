package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InvoiceJob is the message published when a booking is confirmed and
// its invoice needs to be generated and delivered.
type InvoiceJob struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	Attempt   int       `json:"attempt"`
	CreatedAt time.Time `json:"created_at"`
	LastError string    `json:"last_error,omitempty"`
}

func NewInvoiceJob(bookingID uuid.UUID) *InvoiceJob {
	return &InvoiceJob{
		ID:        uuid.New(),
		BookingID: bookingID,
		CreatedAt: time.Now(),
	}
}

func (j *InvoiceJob) ToJSON() ([]byte, error) {
	return json.Marshal(j)
}

func InvoiceJobFromJSON(data []byte) (*InvoiceJob, error) {
	var job InvoiceJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetPartitionKey routes all jobs for one booking to the same
// partition so retries stay ordered.
func (j *InvoiceJob) GetPartitionKey() string {
	return j.BookingID.String()
}
