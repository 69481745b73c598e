// Package brand covers the brand dashboard's own surface: brand login with
// optional OTP and the brand profile with its shipping and payout settings.
// Catalog and order management live in their own packages and share the same
// authenticated API client.
package brand

import (
	"context"
	"time"

	"moda-marketplace/client/internal/api"
	"moda-marketplace/client/internal/auth"
)

// Profile is the brand account as served by the brand profile endpoint.
type Profile struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Slug             string    `json:"slug"`
	Logo             string    `json:"logo,omitempty"`
	Description      string    `json:"description,omitempty"`
	ReturnPolicy     string    `json:"return_policy,omitempty"`
	MinFreeShipping  int       `json:"min_free_shipping,omitempty"`
	ShippingPrice    float64   `json:"shipping_price,omitempty"`
	ShippingProvider string    `json:"shipping_provider,omitempty"`
	AmountWithdrawn  float64   `json:"amount_withdrawn"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial brand profile update. Nil fields are untouched.
// Password changes go through the same endpoint.
type ProfileUpdate struct {
	Name             *string  `json:"name,omitempty"`
	Email            *string  `json:"email,omitempty"`
	Password         *string  `json:"password,omitempty"`
	Slug             *string  `json:"slug,omitempty"`
	Logo             *string  `json:"logo,omitempty"`
	Description      *string  `json:"description,omitempty"`
	ReturnPolicy     *string  `json:"return_policy,omitempty"`
	MinFreeShipping  *int     `json:"min_free_shipping,omitempty"`
	ShippingPrice    *float64 `json:"shipping_price,omitempty"`
	ShippingProvider *string  `json:"shipping_provider,omitempty"`
}

// Client wraps the brand endpoints. It satisfies auth.Authenticator so an
// auth.Flow can run the dashboard login, including the OTP challenge.
type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

var _ auth.Authenticator = (*Client)(nil)

// Login authenticates the brand by email. Brands log in with their email
// only, so identifier is sent as the email field.
func (c *Client) Login(ctx context.Context, identifier, password string) (*auth.LoginResult, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{identifier, password}
	var out auth.LoginResult
	if err := c.api.Post(ctx, "/api/v1/brands/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP exchanges the brand login challenge token and code for a session.
func (c *Client) VerifyOTP(ctx context.Context, sessionToken, code string) (*auth.LoginResult, error) {
	req := struct {
		SessionToken string `json:"session_token"`
		Code         string `json:"code"`
	}{sessionToken, code}
	var out auth.LoginResult
	if err := c.api.Post(ctx, "/api/v1/brands/auth/otp/verify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendOTP re-issues the code for a pending brand login challenge.
func (c *Client) ResendOTP(ctx context.Context, sessionToken string) error {
	req := struct {
		SessionToken string `json:"session_token"`
	}{sessionToken}
	return c.api.Post(ctx, "/api/v1/brands/auth/otp/resend", req, nil)
}

// Profile fetches the authenticated brand's profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.api.Get(ctx, "/api/v1/brands/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial update and returns the new profile.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*Profile, error) {
	var out Profile
	if err := c.api.Put(ctx, "/api/v1/brands/profile", upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
