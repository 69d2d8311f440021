package mail

import (
	"context"
	"log"
)

// NoopSender logs instead of delivering. Useful for local development where
// no SMTP relay is available.
type NoopSender struct{}

func (ns *NoopSender) Send(ctx context.Context, msg Message) error {
	log.Printf("noop mail sender dropped message to %q: %s", msg.To, msg.Subject)
	return nil
}
