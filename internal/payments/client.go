// Package payments covers the checkout payment endpoints: creating a payment
// for a cart and polling its status.
package payments

import (
	"context"
	"net/url"

	"moda-marketplace/client/internal/api"
)

// Amount is a monetary value with its currency code.
type Amount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// CartItem is one product variant line of the cart being paid for.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

// PaymentCreate is the payload for creating a payment. ReturnURL is where the
// payment provider redirects the shopper after confirmation.
type PaymentCreate struct {
	Amount      Amount     `json:"amount"`
	Description string     `json:"description"`
	ReturnURL   string     `json:"returnUrl"`
	Items       []CartItem `json:"items"`
}

// Client wraps the payment endpoints.
type Client struct {
	api *api.Client
}

// NewClient returns a payments client on top of the shared API client.
func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// Create registers a payment for the given cart and returns the provider's
// confirmation URL the shopper must visit to complete it.
func (c *Client) Create(ctx context.Context, req PaymentCreate) (string, error) {
	var out struct {
		ConfirmationURL string `json:"confirmation_url"`
	}
	if err := c.api.Post(ctx, "/api/v1/payments/create", req, &out); err != nil {
		return "", err
	}
	return out.ConfirmationURL, nil
}

// Status reports the current state of a payment by its ID.
func (c *Client) Status(ctx context.Context, paymentID string) (string, error) {
	q := url.Values{}
	q.Set("payment_id", paymentID)
	var out struct {
		Status string `json:"status"`
	}
	if err := c.api.Get(ctx, "/api/v1/payments/status?"+q.Encode(), &out); err != nil {
		return "", err
	}
	return out.Status, nil
}
