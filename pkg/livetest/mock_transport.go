package livetest

import (
	"sync"

	"github.com/google/uuid"

	"github.com/imgrooty/roi-calculator/pkg/core"
)

// MockTransport implements core.Transport for testing.
type MockTransport struct {
	ID          string
	Sent        []core.Message
	closed      bool
	errorToSend error

	mu sync.Mutex
}

// NewMockTransport creates a new mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		ID: "test-socket-" + uuid.New().String()[:8],
	}
}

// Send records a sent message.
func (mt *MockTransport) Send(msg core.Message) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.errorToSend != nil {
		return mt.errorToSend
	}
	if mt.closed {
		return core.ErrSocketClosed
	}
	mt.Sent = append(mt.Sent, msg)
	return nil
}

// Close marks the transport as closed.
func (mt *MockTransport) Close() error {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.closed = true
	return nil
}

// IsConnected returns the connection status.
func (mt *MockTransport) IsConnected() bool {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return !mt.closed
}

// SentMessages returns a copy of all sent messages.
func (mt *MockTransport) SentMessages() []core.Message {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	out := make([]core.Message, len(mt.Sent))
	copy(out, mt.Sent)
	return out
}

// SetError sets an error to return on every Send.
func (mt *MockTransport) SetError(err error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.errorToSend = err
}

// AssertSent reports whether a message with event was sent.
func (mt *MockTransport) AssertSent(event string) bool {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, msg := range mt.Sent {
		if msg.Event == event {
			return true
		}
	}
	return false
}
