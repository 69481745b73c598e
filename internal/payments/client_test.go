package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moda-marketplace/client/internal/api"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(api.New(server.URL, api.WithRetry(0, time.Millisecond)))
}

func TestCreate(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/payments/create" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var body PaymentCreate
		json.NewDecoder(r.Body).Decode(&body)
		if body.Amount.Value != 240.5 || body.Amount.Currency != "RUB" {
			t.Errorf("amount = %+v", body.Amount)
		}
		if body.ReturnURL != "https://shop.example/checkout/done" {
			t.Errorf("returnUrl = %q", body.ReturnURL)
		}
		if len(body.Items) != 1 || body.Items[0].Size != "M" {
			t.Errorf("items = %+v", body.Items)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"confirmation_url": "https://pay.example/confirm/abc",
		})
	}))

	url, err := client.Create(context.Background(), PaymentCreate{
		Amount:      Amount{Value: 240.5, Currency: "RUB"},
		Description: "Order of 2 items",
		ReturnURL:   "https://shop.example/checkout/done",
		Items:       []CartItem{{ProductID: "p1", Quantity: 2, Size: "M"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if url != "https://pay.example/confirm/abc" {
		t.Errorf("confirmation url = %q", url)
	}
}

func TestStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/payments/status" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("payment_id"); got != "pay-1" {
			t.Errorf("payment_id = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "succeeded"})
	}))

	status, err := client.Status(context.Background(), "pay-1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != "succeeded" {
		t.Errorf("status = %q, want succeeded", status)
	}
}
