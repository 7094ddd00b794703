// Package core provides the component and socket abstractions of the
// LiveView runtime.
package core

import (
	"context"
	"io"
)

// Component is a stateful page served over a LiveView connection. The
// router mounts one instance per connection and calls it from that
// connection's goroutine only, so implementations need no locking.
type Component interface {
	Name() string

	// Mount runs once, before the first render, with the page's query
	// parameters.
	Mount(ctx context.Context, params Params, session Session) error

	Render(ctx context.Context) Renderer

	// HandleEvent applies a browser event. A returned error is reported
	// to the client; the state is rendered either way.
	HandleEvent(ctx context.Context, event string, payload map[string]any) error

	// HandleInfo applies a message posted with Socket.SendInfo, usually
	// the outcome of background work.
	HandleInfo(ctx context.Context, msg any) error

	Terminate(ctx context.Context, reason TerminateReason) error
}

// Renderer writes HTML.
type Renderer interface {
	Render(ctx context.Context, w io.Writer) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, w io.Writer) error

func (f RendererFunc) Render(ctx context.Context, w io.Writer) error { return f(ctx, w) }

// Params holds the query string of the page a connection was opened from.
type Params map[string]string

// Get returns the value for key, or "".
func (p Params) Get(key string) string { return p[key] }

// GetDefault returns the value for key, or def when it is missing or empty.
func (p Params) GetDefault(key, def string) string {
	if v := p[key]; v != "" {
		return v
	}
	return def
}

// Session carries request-scoped values from the HTTP handler into Mount.
type Session map[string]any

// TerminateReason says why a connection ended.
type TerminateReason uint8

const (
	TerminateNormal TerminateReason = iota
	TerminateShutdown
	TerminateError
)

var terminateReasons = [...]string{"normal", "shutdown", "error"}

func (r TerminateReason) String() string {
	if int(r) < len(terminateReasons) {
		return terminateReasons[r]
	}
	return "unknown"
}

// SocketAware is implemented by components that want their socket.
type SocketAware interface {
	SetSocket(s *Socket)
}

// BaseComponent gives no-op Mount, HandleEvent, HandleInfo and Terminate
// methods and keeps the socket. Embed it and override what you need.
type BaseComponent struct {
	socket *Socket
}

func (bc *BaseComponent) SetSocket(s *Socket) { bc.socket = s }

// Socket returns the connection's socket, or nil for a plain HTTP render.
func (bc *BaseComponent) Socket() *Socket { return bc.socket }

func (*BaseComponent) Mount(context.Context, Params, Session) error              { return nil }
func (*BaseComponent) HandleEvent(context.Context, string, map[string]any) error { return nil }
func (*BaseComponent) HandleInfo(context.Context, any) error                     { return nil }
func (*BaseComponent) Terminate(context.Context, TerminateReason) error          { return nil }
