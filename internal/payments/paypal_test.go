package payments_test

import (
	"context"
	"encoding/json"
	"fmt"
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

func paypalTestServer(t *testing.T, captureStatus string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "client-id", user)
		json.NewEncoder(w).Encode(map[string]string{"access_token": "token-xyz"})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-xyz", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "CAPTURE", body["intent"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "PP-ORDER-1", "status": "CREATED"})
	})
	mux.HandleFunc("/v2/checkout/orders/PP-ORDER-1/capture", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"id": "PP-ORDER-1",
			"status": %q,
			"purchase_units": [{"payments": {"captures": [{"id": "CAP-1", "status": %q}]}}]
		}`, captureStatus, captureStatus)
	})

	return httptest.NewServer(mux)
}

func newPayPalClient(baseURL string) payments.PayPalClient {
	return payments.NewPayPalClient(config.PayPalConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BaseURL:      baseURL,
		Currency:     "USD",
		Timeout:      5 * time.Second,
	})
}

func TestPayPalCreateOrder_CarriesBookingReference(t *testing.T) {
	server := paypalTestServer(t, "COMPLETED")
	defer server.Close()

	client := newPayPalClient(server.URL)

	order, err := client.CreateOrder(context.Background(), "booking-9", 285, "USD")
	require.NoError(t, err)

	assert.Equal(t, "PP-ORDER-1", order.ID)
	assert.Equal(t, "CREATED", order.Status)
}

func TestPayPalCaptureOrder_Completed(t *testing.T) {
	server := paypalTestServer(t, "COMPLETED")
	defer server.Close()

	client := newPayPalClient(server.URL)

	capture, err := client.CaptureOrder(context.Background(), "PP-ORDER-1")
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", capture.Status)
	assert.Equal(t, "CAP-1", capture.CaptureID)
	assert.NotEmpty(t, capture.Raw)
}

func TestPayPalCaptureOrder_PendingIsIncomplete(t *testing.T) {
	server := paypalTestServer(t, "PENDING")
	defer server.Close()

	client := newPayPalClient(server.URL)

	_, err := client.CaptureOrder(context.Background(), "PP-ORDER-1")
	assert.ErrorIs(t, err, apperrors.ErrPaymentIncomplete)
}

func TestPayPalCreateOrder_TokenFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newPayPalClient(server.URL)

	_, err := client.CreateOrder(context.Background(), "booking-9", 285, "USD")
	assert.True(t, apperrors.IsGateway(err))
}
