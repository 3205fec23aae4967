// Package auth implements the identity service and the email-verification
// flow that gates new accounts.
package auth

import (
	"context"
	"errors"

	"github.com/nafisahi/swiftaid/internal/models"
)

// Error variables surfaced by the identity service. Callers map these to
// fixed user-facing messages; underlying detail is never shown to the user.
var (
	ErrInvalidCredentials = errors.New("email or password incorrect")
	ErrEmailAlreadyInUse  = errors.New("this email is already registered")
	ErrUnknownAccount     = errors.New("no account exists for this email")
	ErrInvalidCode        = errors.New("verification code is invalid or expired")
	ErrEmailNotVerified   = errors.New("email address has not been verified")
	ErrReauthRequired     = errors.New("recent reauthentication is required for this action")
	ErrNotSignedIn        = errors.New("no user is signed in")
)

// Identity is the account collaborator consumed by the HTTP layer and the
// verification flow controller.
type Identity interface {
	// SignIn authenticates an existing account. Unverified accounts fail
	// with ErrEmailNotVerified and leave a pending verification challenge.
	SignIn(ctx context.Context, email, password string) (*models.AuthSession, error)
	// CreateUser registers a new unverified account and dispatches its
	// first verification code.
	CreateUser(ctx context.Context, email, password, displayName, phoneNumber string) error
	// ResetPassword dispatches a password-reset code to a known account.
	ResetPassword(ctx context.Context, email string) error

	GenerateVerificationCode() string
	StoreVerificationCode(ctx context.Context, email, code string) error
	DispatchVerificationCode(ctx context.Context, email, code string) error
	// VerifyCode checks a submitted code against the pending challenge and
	// marks the account verified on success.
	VerifyCode(ctx context.Context, code string) error

	// Reauthenticate re-checks credentials ahead of destructive actions.
	Reauthenticate(ctx context.Context, email, password string) error
	// DeleteAccount removes the signed-in account. It fails with
	// ErrReauthRequired unless Reauthenticate succeeded recently.
	DeleteAccount(ctx context.Context) error

	SignOut()
	// ClearPendingUser abandons an in-progress verification challenge,
	// removing the unverified account it belongs to.
	ClearPendingUser(ctx context.Context) error
	// Session returns the current session, or nil when signed out.
	Session() *models.AuthSession
}
