package account

import (
	"context"

	"moda-marketplace/client/internal/api"
	"moda-marketplace/client/internal/auth"
)

// Client wraps the consumer account endpoints. It satisfies auth.Authenticator
// and auth.DisableAuthenticator so an auth.Flow can drive the login and 2FA
// turn-off challenges.
type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

var (
	_ auth.Authenticator        = (*Client)(nil)
	_ auth.DisableAuthenticator = (*Client)(nil)
)

// Register creates a new account. The backend signs the user in immediately,
// so the result always carries a session.
func (c *Client) Register(ctx context.Context, reg Registration) (*auth.LoginResult, error) {
	var out auth.LoginResult
	if err := c.api.Post(ctx, "/api/v1/auth/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login submits an email-or-username identifier with a password. Accounts
// with 2FA enabled get an OTP challenge instead of a session.
func (c *Client) Login(ctx context.Context, identifier, password string) (*auth.LoginResult, error) {
	req := struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}{identifier, password}
	var out auth.LoginResult
	if err := c.api.Post(ctx, "/api/v1/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP exchanges the challenge token and code for a session.
func (c *Client) VerifyOTP(ctx context.Context, sessionToken, code string) (*auth.LoginResult, error) {
	req := struct {
		SessionToken string `json:"session_token"`
		Code         string `json:"code"`
	}{sessionToken, code}
	var out auth.LoginResult
	if err := c.api.Post(ctx, "/api/v1/auth/otp/verify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendOTP asks the server to issue a new code for a pending challenge.
func (c *Client) ResendOTP(ctx context.Context, sessionToken string) error {
	req := struct {
		SessionToken string `json:"session_token"`
	}{sessionToken}
	return c.api.Post(ctx, "/api/v1/auth/otp/resend", req, nil)
}

// OAuthLogin exchanges a provider token for a session. The provider handshake
// itself (browser redirect, native SDK) happens outside this client.
func (c *Client) OAuthLogin(ctx context.Context, provider, token string) (*auth.LoginResult, error) {
	req := struct {
		Provider string `json:"provider"`
		Token    string `json:"token"`
	}{provider, token}
	var out auth.LoginResult
	if err := c.api.Post(ctx, "/api/v1/auth/oauth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout tells the server the session is done. Tokens are stateless, so this
// is advisory; local state is cleared by the session manager regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.api.Post(ctx, "/api/v1/auth/logout", nil, nil)
}

// RequestEmailVerification sends a fresh verification code to the account's
// email address. Rejected with 400 when the email is already verified.
func (c *Client) RequestEmailVerification(ctx context.Context) error {
	return c.api.Post(ctx, "/api/v1/auth/request-verification", nil, nil)
}

// VerifyEmail confirms the address with the emailed code.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	req := struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}{email, code}
	return c.api.Post(ctx, "/api/v1/auth/verify-email", req, nil)
}

// ForgotPassword starts password recovery. The server answers with the same
// message whether or not the account exists.
func (c *Client) ForgotPassword(ctx context.Context, identifier string) error {
	req := struct {
		Identifier string `json:"identifier"`
	}{identifier}
	return c.api.Post(ctx, "/api/v1/auth/forgot-password", req, nil)
}

// ResetPassword sets a new password using the emailed recovery token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	req := struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}{token, newPassword}
	return c.api.Post(ctx, "/api/v1/auth/reset-password", req, nil)
}

// Profile fetches the authenticated consumer's profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.api.Get(ctx, "/api/v1/user/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial profile update and returns the new profile.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*Profile, error) {
	var out Profile
	if err := c.api.Put(ctx, "/api/v1/user/profile", upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetFavoriteBrands replaces the user's favorite brand set.
func (c *Client) SetFavoriteBrands(ctx context.Context, brandIDs []int) error {
	req := struct {
		BrandIDs []int `json:"brand_ids"`
	}{brandIDs}
	return c.api.Post(ctx, "/api/v1/user/brands", req, nil)
}

// SetFavoriteStyles replaces the user's favorite style set.
func (c *Client) SetFavoriteStyles(ctx context.Context, styleIDs []string) error {
	req := struct {
		StyleIDs []string `json:"style_ids"`
	}{styleIDs}
	return c.api.Post(ctx, "/api/v1/user/styles", req, nil)
}

// Enable2FA turns on OTP login for the account. Subsequent logins go through
// the challenge flow.
func (c *Client) Enable2FA(ctx context.Context) error {
	return c.api.Post(ctx, "/api/v1/user/2fa/enable", nil, nil)
}

// BeginDisableOTP starts the 2FA turn-off challenge and returns its token.
func (c *Client) BeginDisableOTP(ctx context.Context) (string, error) {
	var out struct {
		SessionToken string `json:"session_token"`
	}
	if err := c.api.Post(ctx, "/api/v1/user/2fa/disable", nil, &out); err != nil {
		return "", err
	}
	return out.SessionToken, nil
}

// ConfirmDisableOTP submits the code confirming the 2FA turn-off.
func (c *Client) ConfirmDisableOTP(ctx context.Context, sessionToken, code string) error {
	req := struct {
		SessionToken string `json:"session_token"`
		Code         string `json:"code"`
	}{sessionToken, code}
	return c.api.Post(ctx, "/api/v1/user/2fa/disable/confirm", req, nil)
}
