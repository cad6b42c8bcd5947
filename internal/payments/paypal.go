package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"conferly/internal/shared/apperrors"
	"conferly/internal/shared/config"
)

// PayPalOrder is the subset of the Orders v2 entity the flow needs
type PayPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PayPalCapture is the result of capturing an approved order
type PayPalCapture struct {
	OrderID   string
	CaptureID string
	Status    string
	Raw       string
}

// PayPalClient talks to the PayPal Orders v2 API
type PayPalClient interface {
	CreateOrder(ctx context.Context, bookingID string, amount float64, currency string) (*PayPalOrder, error)
	CaptureOrder(ctx context.Context, orderID string) (*PayPalCapture, error)
}

type paypalClient struct {
	cfg    config.PayPalConfig
	client *http.Client
}

func NewPayPalClient(cfg config.PayPalConfig) PayPalClient {
	return &paypalClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// getAccessToken fetches a client-credentials token. Tokens are not
// cached; each payment call acquires a fresh one.
func (c *paypalClient) getAccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, body)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", err
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	return tokenResp.AccessToken, nil
}

// CreateOrder creates a CAPTURE-intent order carrying the booking ID
// as reference. Amounts are formatted with two decimals.
func (c *paypalClient) CreateOrder(ctx context.Context, bookingID string, amount float64, currency string) (*PayPalOrder, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, apperrors.NewGatewayError("paypal", "create order", err)
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"reference_id": bookingID,
				"amount": map[string]string{
					"currency_code": currency,
					"value":         fmt.Sprintf("%.2f", amount),
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewGatewayError("paypal", "create order", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v2/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewGatewayError("paypal", "create order", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewGatewayError("paypal", "create order", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewGatewayError("paypal", "create order", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperrors.NewGatewayError("paypal", "create order",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody))
	}

	var order PayPalOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, apperrors.NewGatewayError("paypal", "create order", err)
	}

	return &order, nil
}

// CaptureOrder captures an approved order. Any terminal state other
// than COMPLETED is reported as an incomplete payment, not a gateway
// failure.
func (c *paypalClient) CaptureOrder(ctx context.Context, orderID string) (*PayPalCapture, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, apperrors.NewGatewayError("paypal", "capture order", err)
	}

	captureURL := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.cfg.BaseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, captureURL, bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, apperrors.NewGatewayError("paypal", "capture order", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewGatewayError("paypal", "capture order", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewGatewayError("paypal", "capture order", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperrors.NewGatewayError("paypal", "capture order",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody))
	}

	var captureResp struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					ID     string `json:"id"`
					Status string `json:"status"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(respBody, &captureResp); err != nil {
		return nil, apperrors.NewGatewayError("paypal", "capture order", err)
	}

	capture := &PayPalCapture{
		OrderID: captureResp.ID,
		Status:  captureResp.Status,
		Raw:     string(respBody),
	}
	if len(captureResp.PurchaseUnits) > 0 && len(captureResp.PurchaseUnits[0].Payments.Captures) > 0 {
		capture.CaptureID = captureResp.PurchaseUnits[0].Payments.Captures[0].ID
	}

	if captureResp.Status != "COMPLETED" {
		return capture, fmt.Errorf("capture status %s: %w", captureResp.Status, apperrors.ErrPaymentIncomplete)
	}

	return capture, nil
}
