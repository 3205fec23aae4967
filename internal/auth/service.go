package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nafisahi/swiftaid/internal/models"
	"github.com/nafisahi/swiftaid/internal/notify"
	"github.com/nafisahi/swiftaid/internal/store"
	"github.com/nafisahi/swiftaid/internal/util"
)

// Timing constants for the identity service.
const (
	// CodeTTL is how long a dispatched verification code stays valid.
	CodeTTL = 10 * time.Minute
	// ReauthWindow is how recently Reauthenticate must have succeeded
	// before a destructive action is allowed.
	ReauthWindow = 5 * time.Minute
)

// Service is the store-backed Identity implementation.
type Service struct {
	store      store.Store
	dispatcher notify.Dispatcher

	mu           sync.Mutex
	session      *models.AuthSession
	pendingEmail string
	lastReauth   time.Time
	now          func() time.Time
}

// NewService creates an identity service over the given store and code
// dispatcher.
func NewService(st store.Store, dispatcher notify.Dispatcher) *Service {
	return &Service{
		store:      st,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// SignIn authenticates an existing account.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		slog.Error("SignIn store lookup failed", "error", err, "email", email)
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if user == nil {
		slog.Debug("SignIn rejected unknown email", "email", email)
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		slog.Debug("SignIn rejected wrong password", "email", email)
		return nil, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !user.Verified {
		// Credentials are right but the email challenge was never
		// completed; reopen it instead of signing in.
		s.pendingEmail = user.Email
		s.session = &models.AuthSession{
			UserID:              user.ID,
			DisplayName:         user.DisplayName,
			Email:               user.Email,
			PendingVerification: true,
		}
		slog.Info("SignIn deferred pending email verification", "email", email)
		return nil, ErrEmailNotVerified
	}

	s.session = &models.AuthSession{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}
	s.pendingEmail = ""
	slog.Info("SignIn succeeded", "email", email)
	return s.sessionCopyLocked(), nil
}

// CreateUser registers a new unverified account and dispatches its first
// verification code.
func (s *Service) CreateUser(ctx context.Context, email, password, displayName, phoneNumber string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("CreateUser password hashing failed", "error", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PhoneNumber:  phoneNumber,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			slog.Debug("CreateUser rejected duplicate email", "email", email)
			return ErrEmailAlreadyInUse
		}
		slog.Error("CreateUser store insert failed", "error", err, "email", email)
		return fmt.Errorf("failed to create account: %w", err)
	}

	s.mu.Lock()
	s.pendingEmail = user.Email
	s.session = &models.AuthSession{
		UserID:              user.ID,
		DisplayName:         user.DisplayName,
		Email:               user.Email,
		PendingVerification: true,
	}
	s.mu.Unlock()

	code := s.GenerateVerificationCode()
	if err := s.StoreVerificationCode(ctx, user.Email, code); err != nil {
		return err
	}
	if err := s.DispatchVerificationCode(ctx, user.Email, code); err != nil {
		return err
	}
	slog.Info("CreateUser succeeded, verification pending", "email", email)
	return nil
}

// ResetPassword dispatches a password-reset code to a known account.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		slog.Error("ResetPassword store lookup failed", "error", err, "email", email)
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if user == nil {
		slog.Debug("ResetPassword rejected unknown email", "email", email)
		return ErrUnknownAccount
	}

	code := s.GenerateVerificationCode()
	if err := s.StoreVerificationCode(ctx, user.Email, code); err != nil {
		return err
	}
	if err := s.DispatchVerificationCode(ctx, user.Email, code); err != nil {
		return err
	}
	slog.Info("ResetPassword code dispatched", "email", email)
	return nil
}

// GenerateVerificationCode returns a fresh 6-digit code.
func (s *Service) GenerateVerificationCode() string {
	return util.GenerateRandomDigits(models.VerificationCodeLength)
}

// StoreVerificationCode persists the code with its expiry, replacing any
// earlier code for the same email.
func (s *Service) StoreVerificationCode(ctx context.Context, email, code string) error {
	now := s.now()
	vc := models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(CodeTTL),
		CreatedAt: now,
	}
	if err := s.store.SaveVerificationCode(vc); err != nil {
		slog.Error("StoreVerificationCode failed", "error", err, "email", email)
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

// DispatchVerificationCode sends the code through the configured dispatcher.
// The email identifies the account; the dispatcher picks the address its
// channel actually delivers to (phone number for SMS, email for SMTP).
func (s *Service) DispatchVerificationCode(ctx context.Context, email, code string) error {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		slog.Error("DispatchVerificationCode store lookup failed", "error", err, "email", email)
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if user == nil {
		slog.Debug("DispatchVerificationCode rejected unknown email", "email", email)
		return ErrUnknownAccount
	}
	to, err := s.dispatcher.DestinationFor(*user)
	if err != nil {
		slog.Error("DispatchVerificationCode has no destination", "error", err, "email", email)
		return fmt.Errorf("failed to resolve dispatch destination: %w", err)
	}
	if err := s.dispatcher.DispatchCode(ctx, to, code); err != nil {
		slog.Error("DispatchVerificationCode failed", "error", err, "email", email)
		return fmt.Errorf("failed to dispatch verification code: %w", err)
	}
	return nil
}

// VerifyCode checks a submitted code against the pending challenge.
func (s *Service) VerifyCode(ctx context.Context, code string) error {
	s.mu.Lock()
	email := s.pendingEmail
	s.mu.Unlock()
	if email == "" {
		return ErrInvalidCode
	}

	stored, err := s.store.GetVerificationCode(email)
	if err != nil {
		slog.Error("VerifyCode store lookup failed", "error", err, "email", email)
		return fmt.Errorf("failed to look up verification code: %w", err)
	}
	if stored == nil || stored.Code != code || stored.Expired(s.now()) {
		slog.Debug("VerifyCode rejected", "email", email)
		return ErrInvalidCode
	}

	user, err := s.store.GetUserByEmail(email)
	if err != nil || user == nil {
		slog.Error("VerifyCode user lookup failed", "error", err, "email", email)
		return ErrInvalidCode
	}
	user.Verified = true
	user.UpdatedAt = s.now()
	if err := s.store.UpdateUser(*user); err != nil {
		slog.Error("VerifyCode user update failed", "error", err, "email", email)
		return fmt.Errorf("failed to mark account verified: %w", err)
	}
	if err := s.store.DeleteVerificationCode(email); err != nil {
		slog.Warn("VerifyCode failed to delete used code", "error", err, "email", email)
	}

	s.mu.Lock()
	s.pendingEmail = ""
	s.session = &models.AuthSession{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}
	s.mu.Unlock()
	slog.Info("VerifyCode succeeded", "email", email)
	return nil
}

// Reauthenticate re-checks credentials and opens the destructive-action
// window on success.
func (s *Service) Reauthenticate(ctx context.Context, email, password string) error {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		slog.Error("Reauthenticate store lookup failed", "error", err, "email", email)
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		slog.Debug("Reauthenticate rejected", "email", email)
		return ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || !equalEmail(s.session.Email, email) {
		return ErrNotSignedIn
	}
	s.lastReauth = s.now()
	slog.Info("Reauthenticate succeeded", "email", email)
	return nil
}

// DeleteAccount removes the signed-in account after recent reauthentication.
func (s *Service) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	sess := s.session
	lastReauth := s.lastReauth
	s.mu.Unlock()

	if sess == nil {
		return ErrNotSignedIn
	}
	if lastReauth.IsZero() || s.now().Sub(lastReauth) > ReauthWindow {
		slog.Debug("DeleteAccount refused without recent reauthentication", "email", sess.Email)
		return ErrReauthRequired
	}

	if err := s.store.DeleteVerificationCode(sess.Email); err != nil {
		slog.Warn("DeleteAccount failed to delete verification code", "error", err, "email", sess.Email)
	}
	if err := s.store.DeleteUser(sess.UserID); err != nil {
		slog.Error("DeleteAccount store delete failed", "error", err, "email", sess.Email)
		return fmt.Errorf("failed to delete account: %w", err)
	}
	slog.Info("DeleteAccount succeeded", "email", sess.Email)
	s.SignOut()
	return nil
}

// SignOut clears the current session.
func (s *Service) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.pendingEmail = ""
	s.lastReauth = time.Time{}
}

// ClearPendingUser abandons an in-progress verification challenge and
// removes the unverified account it belongs to.
func (s *Service) ClearPendingUser(ctx context.Context) error {
	s.mu.Lock()
	email := s.pendingEmail
	s.mu.Unlock()
	if email == "" {
		return nil
	}

	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		slog.Error("ClearPendingUser store lookup failed", "error", err, "email", email)
		return fmt.Errorf("failed to look up pending account: %w", err)
	}
	if user != nil && !user.Verified {
		if err := s.store.DeleteUser(user.ID); err != nil {
			slog.Error("ClearPendingUser failed to delete unverified account", "error", err, "email", email)
			return fmt.Errorf("failed to delete unverified account: %w", err)
		}
	}
	if err := s.store.DeleteVerificationCode(email); err != nil {
		slog.Warn("ClearPendingUser failed to delete verification code", "error", err, "email", email)
	}

	s.mu.Lock()
	s.pendingEmail = ""
	s.session = nil
	s.mu.Unlock()
	slog.Info("ClearPendingUser abandoned verification challenge", "email", email)
	return nil
}

// Session returns a copy of the current session, or nil when signed out.
func (s *Service) Session() *models.AuthSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionCopyLocked()
}

func (s *Service) sessionCopyLocked() *models.AuthSession {
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

func equalEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
