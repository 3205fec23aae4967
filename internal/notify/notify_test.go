package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/nafisahi/swiftaid/internal/models"
)

func TestMockDispatcherRecordsSends(t *testing.T) {
	m := NewMockDispatcher()

	if err := m.DispatchCode(context.Background(), "ada@example.com", "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.DispatchCode(context.Background(), "ada@example.com", "654321"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(m.Sent))
	}
	if m.LastCode() != "654321" {
		t.Errorf("expected last code 654321, got %s", m.LastCode())
	}
}

func TestMockDispatcherErr(t *testing.T) {
	m := NewMockDispatcher()
	m.Err = errors.New("network down")

	if err := m.DispatchCode(context.Background(), "ada@example.com", "123456"); err == nil {
		t.Error("expected configured error")
	}
	if len(m.Sent) != 0 {
		t.Errorf("failed dispatch must not be recorded, got %d", len(m.Sent))
	}
}

func TestDestinationForPerChannel(t *testing.T) {
	user := models.User{Email: "ada@example.com", PhoneNumber: "+447700900000"}

	sms := &TwilioSMSDispatcher{from: "+15005550006"}
	if to, err := sms.DestinationFor(user); err != nil || to != user.PhoneNumber {
		t.Errorf("SMS destination = %q, %v; want phone number", to, err)
	}
	if _, err := sms.DestinationFor(models.User{Email: "ada@example.com"}); !errors.Is(err, ErrNoDestination) {
		t.Errorf("expected ErrNoDestination without phone number, got %v", err)
	}

	mail := &SMTPDispatcher{from: "noreply@swiftaid.app"}
	if to, err := mail.DestinationFor(user); err != nil || to != user.Email {
		t.Errorf("email destination = %q, %v; want account email", to, err)
	}
	if _, err := mail.DestinationFor(models.User{PhoneNumber: "+447700900000"}); !errors.Is(err, ErrNoDestination) {
		t.Errorf("expected ErrNoDestination without email, got %v", err)
	}
}

func TestSMTPDispatcherMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	d := &SMTPDispatcher{
		addr: "mail.example.com:587",
		from: "noreply@swiftaid.app",
		sendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		},
	}

	if err := d.DispatchCode(context.Background(), "ada@example.com", "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAddr != "mail.example.com:587" || gotFrom != "noreply@swiftaid.app" {
		t.Errorf("unexpected addr/from: %s %s", gotAddr, gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "ada@example.com" {
		t.Errorf("unexpected recipients: %v", gotTo)
	}
	body := string(gotMsg)
	if !strings.Contains(body, "123456") {
		t.Errorf("message missing code: %s", body)
	}
	if !strings.Contains(body, "Subject: Your SwiftAid verification code") {
		t.Errorf("message missing subject: %s", body)
	}
}

func TestSMTPDispatcherEmptyRecipient(t *testing.T) {
	d := &SMTPDispatcher{
		addr: "mail.example.com:587",
		from: "noreply@swiftaid.app",
		sendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			t.Error("sendMail called for empty recipient")
			return nil
		},
	}
	if err := d.DispatchCode(context.Background(), "", "123456"); err == nil {
		t.Error("expected error for empty recipient")
	}
}
