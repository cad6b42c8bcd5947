package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"conferly/internal/shared/apperrors"
	"conferly/internal/shared/config"
)

// RazorpayOrder is the subset of the order entity the checkout needs
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// RazorpayClient talks to the Razorpay Orders API
type RazorpayClient interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*RazorpayOrder, error)
	VerifySignature(orderID, paymentID, signature string) error
	KeyID() string
}

type razorpayClient struct {
	cfg    config.RazorpayConfig
	client *http.Client
}

func NewRazorpayClient(cfg config.RazorpayConfig) RazorpayClient {
	return &razorpayClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *razorpayClient) KeyID() string {
	return c.cfg.KeyID
}

// CreateOrder creates an order for the given paise amount. Amounts are
// integral paise on the wire, never floats.
func (c *razorpayClient) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*RazorpayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewGatewayError("razorpay", "create order", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewGatewayError("razorpay", "create order", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewGatewayError("razorpay", "create order", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewGatewayError("razorpay", "create order", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewGatewayError("razorpay", "create order",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody))
	}

	var order RazorpayOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, apperrors.NewGatewayError("razorpay", "create order", err)
	}

	return &order, nil
}

// VerifySignature checks the checkout callback signature. The expected
// value is HMAC-SHA256 over "orderID|paymentID" keyed with the secret,
// hex encoded. Comparison is constant time.
func (c *razorpayClient) VerifySignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(c.cfg.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return apperrors.ErrSignatureMismatch
	}
	return nil
}
