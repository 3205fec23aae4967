package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nafisahi/swiftaid/internal/notify"
	"github.com/nafisahi/swiftaid/internal/store"
)

func newTestService() (*Service, *notify.MockDispatcher) {
	dispatcher := notify.NewMockDispatcher()
	return NewService(store.NewInMemoryStore(), dispatcher), dispatcher
}

func signUp(t *testing.T, svc *Service) string {
	t.Helper()
	if err := svc.CreateUser(context.Background(), "ada@example.com", "Abcdef1", "Ada Lovelace", "+447700900000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return "ada@example.com"
}

func verify(t *testing.T, svc *Service, dispatcher *notify.MockDispatcher) {
	t.Helper()
	if err := svc.VerifyCode(context.Background(), dispatcher.LastCode()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateUserDispatchesCode(t *testing.T) {
	svc, dispatcher := newTestService()
	signUp(t, svc)

	if len(dispatcher.Sent) != 1 {
		t.Fatalf("expected 1 dispatched code, got %d", len(dispatcher.Sent))
	}
	if len(dispatcher.LastCode()) != 6 {
		t.Errorf("expected 6-digit code, got %q", dispatcher.LastCode())
	}

	sess := svc.Session()
	if sess == nil || !sess.PendingVerification {
		t.Errorf("expected pending-verification session, got %+v", sess)
	}
}

func TestDispatchFollowsChannelDestination(t *testing.T) {
	dispatcher := notify.NewMockDispatcher()
	dispatcher.ToPhone = true
	svc := NewService(store.NewInMemoryStore(), dispatcher)
	signUp(t, svc)

	if len(dispatcher.Sent) != 1 {
		t.Fatalf("expected 1 dispatched code, got %d", len(dispatcher.Sent))
	}
	if got := dispatcher.Sent[0].To; got != "+447700900000" {
		t.Errorf("phone channel dispatched to %q, want the account's phone number", got)
	}

	// The email channel keeps addressing the account email.
	svc2, dispatcher2 := newTestService()
	signUp(t, svc2)
	if got := dispatcher2.Sent[0].To; got != "ada@example.com" {
		t.Errorf("email channel dispatched to %q, want the account email", got)
	}
}

func TestDispatchFailsWithoutPhoneOnSMSChannel(t *testing.T) {
	dispatcher := notify.NewMockDispatcher()
	dispatcher.ToPhone = true
	svc := NewService(store.NewInMemoryStore(), dispatcher)

	err := svc.CreateUser(context.Background(), "ada@example.com", "Abcdef1", "Ada Lovelace", "")
	if !errors.Is(err, notify.ErrNoDestination) {
		t.Errorf("expected ErrNoDestination, got %v", err)
	}
	if len(dispatcher.Sent) != 0 {
		t.Errorf("dispatched without a destination: %d sends", len(dispatcher.Sent))
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	signUp(t, svc)

	err := svc.CreateUser(context.Background(), "ADA@example.com", "Abcdef1", "Someone Else", "")
	if !errors.Is(err, ErrEmailAlreadyInUse) {
		t.Errorf("expected ErrEmailAlreadyInUse, got %v", err)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc, dispatcher := newTestService()
	email := signUp(t, svc)
	verify(t, svc, dispatcher)

	if _, err := svc.SignIn(context.Background(), "nobody@example.com", "Abcdef1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.SignIn(context.Background(), email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignInUnverifiedAccount(t *testing.T) {
	svc, _ := newTestService()
	email := signUp(t, svc)
	svc.SignOut()

	_, err := svc.SignIn(context.Background(), email, "Abcdef1")
	if !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
	sess := svc.Session()
	if sess == nil || !sess.PendingVerification {
		t.Errorf("expected reopened verification challenge, got %+v", sess)
	}
}

func TestVerifyCodeLifecycle(t *testing.T) {
	svc, dispatcher := newTestService()
	email := signUp(t, svc)

	if err := svc.VerifyCode(context.Background(), "000000"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("wrong code: expected ErrInvalidCode, got %v", err)
	}

	verify(t, svc, dispatcher)
	sess := svc.Session()
	if sess == nil || sess.PendingVerification {
		t.Errorf("expected verified session, got %+v", sess)
	}

	// A used code cannot be replayed.
	svc.SignOut()
	if _, err := svc.SignIn(context.Background(), email, "Abcdef1"); err != nil {
		t.Fatalf("verified sign-in failed: %v", err)
	}
}

func TestVerifyCodeExpiry(t *testing.T) {
	svc, dispatcher := newTestService()
	signUp(t, svc)

	// Advance the service clock past the code TTL.
	svc.now = func() time.Time { return time.Now().Add(CodeTTL + time.Minute) }

	if err := svc.VerifyCode(context.Background(), dispatcher.LastCode()); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode for expired code, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, dispatcher := newTestService()
	email := signUp(t, svc)
	verify(t, svc, dispatcher)
	sent := len(dispatcher.Sent)

	if err := svc.ResetPassword(context.Background(), "nobody@example.com"); !errors.Is(err, ErrUnknownAccount) {
		t.Errorf("expected ErrUnknownAccount, got %v", err)
	}
	if err := svc.ResetPassword(context.Background(), email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dispatcher.Sent) != sent+1 {
		t.Errorf("expected a reset code dispatch, got %d sends", len(dispatcher.Sent))
	}
}

func TestDeleteAccountRequiresRecentReauth(t *testing.T) {
	svc, dispatcher := newTestService()
	email := signUp(t, svc)
	verify(t, svc, dispatcher)

	if err := svc.DeleteAccount(context.Background()); !errors.Is(err, ErrReauthRequired) {
		t.Fatalf("expected ErrReauthRequired, got %v", err)
	}

	if err := svc.Reauthenticate(context.Background(), email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.Reauthenticate(context.Background(), email, "Abcdef1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteAccount(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Session() != nil {
		t.Error("expected signed-out session after deletion")
	}
	if _, err := svc.SignIn(context.Background(), email, "Abcdef1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("deleted account still signs in: %v", err)
	}
}

func TestDeleteAccountReauthWindowExpires(t *testing.T) {
	svc, dispatcher := newTestService()
	email := signUp(t, svc)
	verify(t, svc, dispatcher)

	if err := svc.Reauthenticate(context.Background(), email, "Abcdef1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.now = func() time.Time { return time.Now().Add(ReauthWindow + time.Minute) }

	if err := svc.DeleteAccount(context.Background()); !errors.Is(err, ErrReauthRequired) {
		t.Errorf("expected ErrReauthRequired after window expiry, got %v", err)
	}
}

func TestClearPendingUserRemovesUnverifiedAccount(t *testing.T) {
	svc, _ := newTestService()
	email := signUp(t, svc)

	if err := svc.ClearPendingUser(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Session() != nil {
		t.Error("expected no session after clearing pending user")
	}
	// The abandoned email is free to register again.
	if err := svc.CreateUser(context.Background(), email, "Abcdef1", "Ada Lovelace", ""); err != nil {
		t.Errorf("re-registration failed: %v", err)
	}
}

func TestClearPendingUserKeepsVerifiedAccount(t *testing.T) {
	svc, dispatcher := newTestService()
	email := signUp(t, svc)
	verify(t, svc, dispatcher)

	if err := svc.ClearPendingUser(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SignIn(context.Background(), email, "Abcdef1"); err != nil {
		t.Errorf("verified account lost: %v", err)
	}
}
