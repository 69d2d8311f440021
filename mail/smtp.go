package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/indieinfra/vitrine/config"
)

// SmtpSender delivers mail over a plain SMTP submission with AUTH PLAIN.
type SmtpSender struct {
	addr string
	auth smtp.Auth
	from string
}

// sendMail is swapped in tests.
var sendMail = smtp.SendMail

func NewSmtpSender(cfg *config.SmtpStrategy) *SmtpSender {
	return &SmtpSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		from: cfg.From,
	}
}

func (s *SmtpSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	if err := sendMail(s.addr, s.auth, s.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("send mail to %q: %w", msg.To, err)
	}

	return nil
}
