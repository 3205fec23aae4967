// Package telephony places emergency voice calls.
//
// Only the UK and EU emergency numbers are ever dialable; any other number is
// rejected before reaching the carrier.
package telephony

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Emergency numbers the dialer will connect.
const (
	NumberUK = "999"
	NumberEU = "112"
)

// ErrUnsupportedNumber is returned for any number other than 999 or 112.
var ErrUnsupportedNumber = errors.New("only the 999 and 112 emergency numbers can be dialed")

// Dialer places an outbound voice call.
type Dialer interface {
	PlaceCall(ctx context.Context, number string) error
}

// IsEmergencyNumber reports whether the number is one of the two dialable
// emergency numbers.
func IsEmergencyNumber(number string) bool {
	return number == NumberUK || number == NumberEU
}

// Opts holds configuration options for the Twilio dialer.
type Opts struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Option defines a configuration option for the Twilio dialer.
type Option func(*Opts)

// WithAccountSID sets the Twilio account SID.
func WithAccountSID(sid string) Option {
	return func(o *Opts) { o.AccountSID = sid }
}

// WithAuthToken sets the Twilio auth token.
func WithAuthToken(token string) Option {
	return func(o *Opts) { o.AuthToken = token }
}

// WithFromNumber sets the caller ID number in E.164 format.
func WithFromNumber(from string) Option {
	return func(o *Opts) { o.FromNumber = from }
}

// TwilioDialer places calls through the Twilio voice API.
type TwilioDialer struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioDialer creates a dialer, falling back to the TWILIO_ACCOUNT_SID,
// TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER environment variables for any
// option not set.
func NewTwilioDialer(opts ...Option) (*TwilioDialer, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	// Fallback to environment variables if not provided via options
	if cfg.AccountSID == "" {
		cfg.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	}
	if cfg.AuthToken == "" {
		cfg.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	}
	if cfg.FromNumber == "" {
		cfg.FromNumber = os.Getenv("TWILIO_FROM_NUMBER")
	}
	slog.Debug("Twilio dialer config loaded",
		"AccountSID_set", cfg.AccountSID != "",
		"AuthToken_set", cfg.AuthToken != "",
		"FromNumber_set", cfg.FromNumber != "")

	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("account SID and auth token must be provided")
	}
	if cfg.FromNumber == "" {
		return nil, fmt.Errorf("from number must be provided")
	}

	client := twilio.NewRestClientWithParams(
		twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		},
	)

	return &TwilioDialer{client: client, from: cfg.FromNumber}, nil
}

// PlaceCall dials the given emergency number.
func (d *TwilioDialer) PlaceCall(ctx context.Context, number string) error {
	if !IsEmergencyNumber(number) {
		slog.Warn("TwilioDialer refused non-emergency number", "number", number)
		return ErrUnsupportedNumber
	}

	params := &twilioApi.CreateCallParams{}
	params.SetTo(number)
	params.SetFrom(d.from)
	params.SetTwiml("<Response><Say>This call was placed by SwiftAid on behalf of a user requiring emergency assistance.</Say><Dial>" + number + "</Dial></Response>")

	if _, err := d.client.Api.CreateCall(params); err != nil {
		slog.Error("TwilioDialer PlaceCall failed", "error", err, "number", number)
		return fmt.Errorf("failed to place call to %s: %w", number, err)
	}
	slog.Info("TwilioDialer placed emergency call", "number", number)
	return nil
}

// MockDialer records placed calls for tests.
type MockDialer struct {
	Calls []string
	Err   error // returned from PlaceCall when non-nil
}

// NewMockDialer creates an empty mock dialer.
func NewMockDialer() *MockDialer {
	return &MockDialer{}
}

// PlaceCall records the call after the same number screening the real dialer
// applies.
func (m *MockDialer) PlaceCall(ctx context.Context, number string) error {
	if !IsEmergencyNumber(number) {
		return ErrUnsupportedNumber
	}
	if m.Err != nil {
		return m.Err
	}
	m.Calls = append(m.Calls, number)
	return nil
}
