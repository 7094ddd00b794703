package router

import (
	"github.com/imgrooty/roi-calculator/pkg/core"
	"github.com/imgrooty/roi-calculator/pkg/protocol"
	"github.com/imgrooty/roi-calculator/pkg/transport"
)

// TransportAdapter lets a core.Socket push through a transport.Transport.
type TransportAdapter struct {
	t transport.Transport
}

// NewTransportAdapter wraps t.
func NewTransportAdapter(t transport.Transport) *TransportAdapter {
	return &TransportAdapter{t: t}
}

// Send converts msg to a protocol message and queues it.
func (a *TransportAdapter) Send(msg core.Message) error {
	out := protocol.NewMessage(msg.Topic, msg.Event, msg.Payload)
	out.Ref = msg.Ref
	return a.t.Send(out)
}

// Close closes the transport.
func (a *TransportAdapter) Close() error {
	return a.t.Close()
}

// IsConnected reports whether the transport is open.
func (a *TransportAdapter) IsConnected() bool {
	return a.t.IsConnected()
}

var _ core.Transport = (*TransportAdapter)(nil)
