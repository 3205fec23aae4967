// Package notify delivers verification codes to users.
//
// Two real dispatchers are provided: SMS via the Twilio API and email via
// SMTP. The verification flow only sees the Dispatcher interface, so tests
// substitute MockDispatcher.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/nafisahi/swiftaid/internal/models"
)

// ErrNoDestination is returned when a user record lacks the address the
// channel delivers to (no phone number for SMS, no email for SMTP).
var ErrNoDestination = errors.New("user has no destination for this channel")

// Dispatcher sends a verification code to a destination (phone number or
// email address, depending on the implementation). DestinationFor picks the
// address a user must be reached at on this channel; callers dispatch to
// that, never to a field of their own choosing.
type Dispatcher interface {
	DispatchCode(ctx context.Context, to string, code string) error
	DestinationFor(u models.User) (string, error)
}

// codeBody renders the message text sent with every code.
func codeBody(code string) string {
	return fmt.Sprintf("Your SwiftAid verification code is %s. It expires in 10 minutes.", code)
}

// MockDispatcher records dispatched codes for tests.
type MockDispatcher struct {
	Sent    []SentCode
	Err     error // returned from DispatchCode when non-nil
	ToPhone bool  // address users by phone number, like the SMS channel
}

// SentCode is one recorded dispatch.
type SentCode struct {
	To   string
	Code string
}

// NewMockDispatcher creates an empty mock dispatcher.
func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

// DispatchCode records the send, or fails with the configured error.
func (m *MockDispatcher) DispatchCode(ctx context.Context, to string, code string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentCode{To: to, Code: code})
	return nil
}

// DestinationFor addresses users by email, or by phone number when ToPhone
// is set.
func (m *MockDispatcher) DestinationFor(u models.User) (string, error) {
	if m.ToPhone {
		if u.PhoneNumber == "" {
			return "", ErrNoDestination
		}
		return u.PhoneNumber, nil
	}
	if u.Email == "" {
		return "", ErrNoDestination
	}
	return u.Email, nil
}

// LastCode returns the most recently dispatched code, or "" when none.
func (m *MockDispatcher) LastCode() string {
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].Code
}
