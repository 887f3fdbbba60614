// Package mail renders and dispatches the two transactional emails produced
// by a lead submission: the staff notification and the lead receipt.
package mail

import "context"

// Message is a single outbound email handed to a Sender. It has no identity
// beyond the call that creates it.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender delivers a message through the transactional-email provider. Each
// call is a single best-effort attempt; there are no retries.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
