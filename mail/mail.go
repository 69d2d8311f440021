// Package mail sends the backoffice notification emails: approval requests
// for new admin registrations and password reset codes.
package mail

import "context"

// Message is a fully composed email, ready for a sender.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a composed message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
