package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"os"

	"github.com/nafisahi/swiftaid/internal/models"
)

// SMTPOpts holds configuration options for the SMTP dispatcher.
type SMTPOpts struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPOption defines a configuration option for the SMTP dispatcher.
type SMTPOption func(*SMTPOpts)

// WithSMTPHost sets the SMTP server host.
func WithSMTPHost(host string) SMTPOption {
	return func(o *SMTPOpts) { o.Host = host }
}

// WithSMTPPort sets the SMTP server port.
func WithSMTPPort(port string) SMTPOption {
	return func(o *SMTPOpts) { o.Port = port }
}

// WithSMTPCredentials sets the SMTP auth username and password.
func WithSMTPCredentials(username, password string) SMTPOption {
	return func(o *SMTPOpts) {
		o.Username = username
		o.Password = password
	}
}

// WithSMTPFrom sets the sender address.
func WithSMTPFrom(from string) SMTPOption {
	return func(o *SMTPOpts) { o.From = from }
}

// sendMailFunc matches smtp.SendMail; tests substitute a recorder.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPDispatcher sends verification codes by email.
type SMTPDispatcher struct {
	addr     string
	auth     smtp.Auth
	from     string
	sendMail sendMailFunc
}

// NewSMTPDispatcher creates an email dispatcher, falling back to the
// SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD and SMTP_FROM
// environment variables for any option not set.
func NewSMTPDispatcher(opts ...SMTPOption) (*SMTPDispatcher, error) {
	var cfg SMTPOpts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Host == "" {
		cfg.Host = os.Getenv("SMTP_HOST")
	}
	if cfg.Port == "" {
		cfg.Port = os.Getenv("SMTP_PORT")
	}
	if cfg.Username == "" {
		cfg.Username = os.Getenv("SMTP_USERNAME")
	}
	if cfg.Password == "" {
		cfg.Password = os.Getenv("SMTP_PASSWORD")
	}
	if cfg.From == "" {
		cfg.From = os.Getenv("SMTP_FROM")
	}
	slog.Debug("SMTP dispatcher config loaded",
		"Host_set", cfg.Host != "",
		"Username_set", cfg.Username != "",
		"From_set", cfg.From != "")

	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host must be provided")
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address must be provided")
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPDispatcher{
		addr:     cfg.Host + ":" + cfg.Port,
		auth:     auth,
		from:     cfg.From,
		sendMail: smtp.SendMail,
	}, nil
}

// DestinationFor addresses users by their account email.
func (d *SMTPDispatcher) DestinationFor(u models.User) (string, error) {
	if u.Email == "" {
		return "", ErrNoDestination
	}
	return u.Email, nil
}

// DispatchCode sends the code as a plain-text email.
func (d *SMTPDispatcher) DispatchCode(ctx context.Context, to string, code string) error {
	if to == "" {
		return fmt.Errorf("recipient cannot be empty")
	}

	msg := []byte("From: " + d.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: Your SwiftAid verification code\r\n" +
		"\r\n" +
		codeBody(code) + "\r\n")

	if err := d.sendMail(d.addr, d.auth, d.from, []string{to}, msg); err != nil {
		slog.Error("SMTPDispatcher DispatchCode failed", "error", err, "to", to)
		return fmt.Errorf("failed to send verification email to %s: %w", to, err)
	}
	slog.Debug("SMTPDispatcher DispatchCode succeeded", "to", to)
	return nil
}
