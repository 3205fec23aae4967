// Package models defines account and verification structures for SwiftAid.
package models

import "time"

// User is an account record held by the store.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PhoneNumber  string    `json:"phone_number,omitempty"` // optional, used for SMS code dispatch
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthSession is the minimal view of the signed-in (or pending) user that
// the rest of the system reads. It owns no tokens and is never persisted.
type AuthSession struct {
	UserID              string `json:"user_id"`
	DisplayName         string `json:"display_name"`
	Email               string `json:"email"`
	PendingVerification bool   `json:"pending_verification"`
}

// VerificationCode is a server-side record of an issued 6-digit code.
type VerificationCode struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (v *VerificationCode) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// CallReceipt records an emergency call placed through the service.
type CallReceipt struct {
	Number   string `json:"number"` // "999" or "112"
	PlacedBy string `json:"placed_by,omitempty"`
	Time     int64  `json:"time"`
}

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	FirstName       string `json:"first_name"`
	Surname         string `json:"surname"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest carries a submitted 6-digit verification code.
type VerifyRequest struct {
	Code string `json:"code"`
}

// ResetRequest asks for a password reset for the given account email.
type ResetRequest struct {
	Email string `json:"email"`
}

// ReauthRequest re-confirms credentials before a destructive action.
type ReauthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmergencyCallRequest asks the service to place an emergency call.
// Confirmed must be set by the client after its confirmation prompt.
type EmergencyCallRequest struct {
	Number    string `json:"number"`
	Confirmed bool   `json:"confirmed"`
}

// SymptomCheckRequest carries a free-text symptom description.
type SymptomCheckRequest struct {
	Description string `json:"description"`
}
