package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/nafisahi/swiftaid/internal/models"
)

// Opts holds configuration options for the Twilio SMS dispatcher.
type Opts struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Option defines a configuration option for the Twilio SMS dispatcher.
type Option func(*Opts)

// WithAccountSID sets the Twilio account SID.
func WithAccountSID(sid string) Option {
	return func(o *Opts) { o.AccountSID = sid }
}

// WithAuthToken sets the Twilio auth token.
func WithAuthToken(token string) Option {
	return func(o *Opts) { o.AuthToken = token }
}

// WithFromNumber sets the sending phone number in E.164 format.
func WithFromNumber(from string) Option {
	return func(o *Opts) { o.FromNumber = from }
}

// TwilioSMSDispatcher sends verification codes as SMS messages.
type TwilioSMSDispatcher struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSMSDispatcher creates an SMS dispatcher, falling back to the
// TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER environment
// variables for any option not set.
func NewTwilioSMSDispatcher(opts ...Option) (*TwilioSMSDispatcher, error) {
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
	slog.Debug("Twilio SMS dispatcher config loaded",
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

	return &TwilioSMSDispatcher{client: client, from: cfg.FromNumber}, nil
}

// DestinationFor addresses users by phone number; SMS cannot reach an
// account that never provided one.
func (d *TwilioSMSDispatcher) DestinationFor(u models.User) (string, error) {
	if u.PhoneNumber == "" {
		return "", fmt.Errorf("%w: account %s has no phone number", ErrNoDestination, u.Email)
	}
	return u.PhoneNumber, nil
}

// DispatchCode sends the code as an SMS message.
func (d *TwilioSMSDispatcher) DispatchCode(ctx context.Context, to string, code string) error {
	if to == "" {
		return fmt.Errorf("recipient cannot be empty")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(d.from)
	params.SetBody(codeBody(code))

	if _, err := d.client.Api.CreateMessage(params); err != nil {
		slog.Error("TwilioSMSDispatcher DispatchCode failed", "error", err, "to", to)
		return fmt.Errorf("failed to send verification SMS to %s: %w", to, err)
	}
	slog.Debug("TwilioSMSDispatcher DispatchCode succeeded", "to", to)
	return nil
}
