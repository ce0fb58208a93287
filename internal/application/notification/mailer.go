// Package notification reacts to committed domain events: it mails users
// and forwards order events to external consumers.
package notification

import "context"

// Message is a plain-text email
type Message struct {
	To      string
	Subject string
	Text    string
}

// Mailer delivers email messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// EventSink receives serialized events keyed for partitioning
type EventSink interface {
	Write(ctx context.Context, key string, payload []byte) error
}
