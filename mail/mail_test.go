package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/indieinfra/vitrine/config"
)

func TestComposeApprovalRequest(t *testing.T) {
	msg := ApprovalRequest("support@example.org", "Ada", "ada@example.org",
		"https://api.example.org/approve?token=abc&action=approve",
		"https://api.example.org/approve?token=abc&action=deny")

	if msg.To != "support@example.org" {
		t.Errorf("to = %q", msg.To)
	}
	for _, want := range []string{"Ada", "ada@example.org", "action=approve", "action=deny"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestComposeResetCode(t *testing.T) {
	msg := ResetCode("ada@example.org", "042153", 10)

	if !strings.Contains(msg.Body, "042153") {
		t.Error("body missing code")
	}
	if !strings.Contains(msg.Body, "10 minutes") {
		t.Error("body missing validity window")
	}
}

func TestSmtpSender(t *testing.T) {
	orig := sendMail
	t.Cleanup(func() { sendMail = orig })

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	sender := NewSmtpSender(&config.SmtpStrategy{
		Host:     "mail.example.org",
		Port:     587,
		Username: "relay",
		Password: "secret",
		From:     "noreply@example.org",
	})

	err := sender.Send(context.Background(), Message{To: "ada@example.org", Subject: "Hello", Body: "body\r\n"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotAddr != "mail.example.org:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotFrom != "noreply@example.org" {
		t.Errorf("from = %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "ada@example.org" {
		t.Errorf("to = %v", gotTo)
	}
	if !strings.Contains(string(gotMsg), "Subject: Hello\r\n") {
		t.Errorf("headers missing subject: %q", gotMsg)
	}
}

func TestSmtpSenderCancelledContext(t *testing.T) {
	orig := sendMail
	t.Cleanup(func() { sendMail = orig })

	called := false
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		called = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := NewSmtpSender(&config.SmtpStrategy{Host: "h", Port: 25, Username: "u", Password: "p", From: "f@x"})
	if err := sender.Send(ctx, Message{To: "a@x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if called {
		t.Error("sendMail called despite cancelled context")
	}
}

func TestFactory(t *testing.T) {
	t.Run("noop", func(t *testing.T) {
		s, err := Create(&config.Mail{Strategy: "noop", SupportAddress: "support@example.org"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if _, ok := s.(*NoopSender); !ok {
			t.Errorf("sender type = %T", s)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Create(&config.Mail{Strategy: "carrier-pigeon"}); err == nil {
			t.Fatal("expected error for unknown strategy")
		}
	})
}
