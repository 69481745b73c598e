// Package account covers the consumer surface of the marketplace API: signup,
// login with optional OTP, email verification, password recovery, profile
// management, onboarding preferences, and 2FA settings.
package account

import "time"

// Profile is the full consumer profile as served by the profile endpoint.
type Profile struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Gender          string `json:"gender,omitempty"`
	SelectedSize    string `json:"selected_size,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	IsActive        bool   `json:"is_active"`
	IsEmailVerified bool   `json:"is_email_verified"`
	IsBrand         bool   `json:"is_brand,omitempty"`

	// Shipping details collected during checkout onboarding.
	FullName      string `json:"full_name,omitempty"`
	DeliveryEmail string `json:"delivery_email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial profile update. Nil fields are left untouched.
type ProfileUpdate struct {
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	SelectedSize *string `json:"selected_size,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`

	FullName      *string `json:"full_name,omitempty"`
	DeliveryEmail *string `json:"delivery_email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	PostalCode    *string `json:"postal_code,omitempty"`
}

// Registration is the signup payload. Gender, size, and avatar are optional
// and can be filled in later through the onboarding screens.
type Registration struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Gender       string `json:"gender,omitempty"`
	SelectedSize string `json:"selected_size,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}
