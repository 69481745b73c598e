package admin

import (
	"context"
	"net/url"

	"moda-marketplace/client/internal/api"
	"moda-marketplace/client/internal/auth"
)

// Client wraps the admin panel endpoints. It satisfies auth.Authenticator so
// the same OTP login flow that serves the dashboard serves the panel; pair it
// with a session manager keyed on the admin token.
type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

var _ auth.Authenticator = (*Client)(nil)

// Login authenticates an admin operator.
func (c *Client) Login(ctx context.Context, identifier, password string) (*auth.LoginResult, error) {
	req := struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}{identifier, password}
	var out auth.LoginResult
	if err := c.api.Post(ctx, "/api/v1/admin/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP exchanges the admin login challenge token and code for a session.
func (c *Client) VerifyOTP(ctx context.Context, sessionToken, code string) (*auth.LoginResult, error) {
	req := struct {
		SessionToken string `json:"session_token"`
		Code         string `json:"code"`
	}{sessionToken, code}
	var out auth.LoginResult
	if err := c.api.Post(ctx, "/api/v1/admin/auth/otp/verify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendOTP re-issues the code for a pending admin login challenge.
func (c *Client) ResendOTP(ctx context.Context, sessionToken string) error {
	req := struct {
		SessionToken string `json:"session_token"`
	}{sessionToken}
	return c.api.Post(ctx, "/api/v1/admin/auth/otp/resend", req, nil)
}

// Notifications lists previously sent notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.api.Get(ctx, "/api/v1/admin/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendNotification broadcasts a notification to the draft's audience.
func (c *Client) SendNotification(ctx context.Context, draft NotificationDraft) (*Notification, error) {
	var out Notification
	if err := c.api.Post(ctx, "/api/v1/admin/notifications", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Withdrawals lists payout requests, optionally filtered by status.
func (c *Client) Withdrawals(ctx context.Context, status string) ([]Withdrawal, error) {
	path := "/api/v1/admin/withdrawals"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []Withdrawal
	if err := c.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteWithdrawal marks a payout request as paid out.
func (c *Client) CompleteWithdrawal(ctx context.Context, withdrawalID string) error {
	return c.api.Post(ctx, "/api/v1/admin/withdrawals/"+url.PathEscape(withdrawalID)+"/complete", nil, nil)
}

// Returns lists return requests, optionally filtered by status.
func (c *Client) Returns(ctx context.Context, status string) ([]Return, error) {
	path := "/api/v1/admin/returns"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []Return
	if err := c.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveReturn accepts a return request.
func (c *Client) ApproveReturn(ctx context.Context, returnID string) error {
	return c.api.Post(ctx, "/api/v1/admin/returns/"+url.PathEscape(returnID)+"/approve", nil, nil)
}

// RejectReturn declines a return request with a reason shown to the user.
func (c *Client) RejectReturn(ctx context.Context, returnID, reason string) error {
	req := struct {
		Reason string `json:"reason"`
	}{reason}
	return c.api.Post(ctx, "/api/v1/admin/returns/"+url.PathEscape(returnID)+"/reject", req, nil)
}
