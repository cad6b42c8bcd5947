package payments_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conferly/internal/payments"
	"conferly/internal/shared/apperrors"
	"conferly/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	client := payments.NewRazorpayClient(config.RazorpayConfig{KeySecret: "test-secret"})

	sig := signPayload("test-secret", "order_123", "pay_456")

	assert.NoError(t, client.VerifySignature("order_123", "pay_456", sig))
}

func TestVerifySignature_Tampered(t *testing.T) {
	client := payments.NewRazorpayClient(config.RazorpayConfig{KeySecret: "test-secret"})

	sig := signPayload("test-secret", "order_123", "pay_456")

	err := client.VerifySignature("order_123", "pay_999", sig)
	assert.ErrorIs(t, err, apperrors.ErrSignatureMismatch)

	err = client.VerifySignature("order_123", "pay_456", sig[:len(sig)-2]+"ff")
	assert.ErrorIs(t, err, apperrors.ErrSignatureMismatch)
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	client := payments.NewRazorpayClient(config.RazorpayConfig{KeySecret: "test-secret"})

	sig := signPayload("other-secret", "order_123", "pay_456")

	assert.ErrorIs(t, client.VerifySignature("order_123", "pay_456", sig), apperrors.ErrSignatureMismatch)
}

func TestCreateOrder_SendsPaiseAndBasicAuth(t *testing.T) {
	var gotPath, gotUser string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc",
			"amount":   gotBody["amount"],
			"currency": "INR",
			"receipt":  gotBody["receipt"],
			"status":   "created",
		})
	}))
	defer server.Close()

	client := payments.NewRazorpayClient(config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
		BaseURL:   server.URL,
		Timeout:   5 * time.Second,
	})

	order, err := client.CreateOrder(context.Background(), 2365500, "INR", "booking-1")
	require.NoError(t, err)

	assert.Equal(t, "/v1/orders", gotPath)
	assert.Equal(t, "rzp_test_key", gotUser)
	assert.Equal(t, float64(2365500), gotBody["amount"])
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(2365500), order.Amount)
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"auth failed"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := payments.NewRazorpayClient(config.RazorpayConfig{
		KeyID:     "bad",
		KeySecret: "bad",
		BaseURL:   server.URL,
		Timeout:   5 * time.Second,
	})

	_, err := client.CreateOrder(context.Background(), 100, "INR", "booking-1")
	assert.True(t, apperrors.IsGateway(err))
}
