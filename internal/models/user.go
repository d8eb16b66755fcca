package models

import (
	"time"
)

// Auth providers
const (
	AuthProviderPhone  = "phone"
	AuthProviderGoogle = "google"
)

// User is an authenticated identity, keyed by phone number on the OTP path
// or by email on the OAuth path.
type User struct {
	ID              string     `json:"user_id"`
	PhoneNumber     *string    `json:"phone_number,omitempty"`
	Email           *string    `json:"email,omitempty"`
	UserName        string     `json:"user_name"`
	AuthProvider    string     `json:"auth_provider"`
	IsPhoneVerified bool       `json:"is_phone_verified"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
