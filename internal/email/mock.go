package email

import (
	"context"
	"fmt"
	"sync"
)

// MockSender records sent emails for tests and local development.
type MockSender struct {
	mu   sync.Mutex
	sent []*Email

	// Err, when set, is returned by Send instead of recording.
	Err error
}

// NewMockSender creates a MockSender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records the email and returns a synthetic message ID.
func (m *MockSender) Send(_ context.Context, email *Email) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.sent = append(m.sent, email)
	return fmt.Sprintf("mock-%d", len(m.sent)), nil
}

// Sent returns a copy of all recorded emails.
func (m *MockSender) Sent() []*Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Email(nil), m.sent...)
}

var _ Sender = (*MockSender)(nil)
