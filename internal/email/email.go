package email

import "context"

// Email represents a message to be sent.
type Email struct {
	To       []string
	From     string // empty means the sender's configured default
	Subject  string
	TextBody string
	HTMLBody string // optional
}

// Sender defines the interface for sending emails.
// Implementations can use SMTP, Postmark, Resend, SES, etc.
type Sender interface {
	// Send sends an email message.
	// Returns the message ID from the email provider (if available).
	Send(ctx context.Context, email *Email) (string, error)
}
