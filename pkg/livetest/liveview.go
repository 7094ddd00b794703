// Package livetest drives LiveView components in tests without a browser
// or a WebSocket: events and info messages are delivered directly and the
// component is re-rendered after each one.
package livetest

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/imgrooty/roi-calculator/pkg/core"
)

// DefaultInfoTimeout bounds AwaitInfo.
const DefaultInfoTimeout = 2 * time.Second

// LiveViewTest provides a testing harness for LiveView components.
type LiveViewTest struct {
	component core.Component
	transport *MockTransport
	socket    *core.Socket
	params    core.Params
	session   core.Session
	rendered  string
	renders   int
	t         *testing.T
}

// MountOption configures the test mount.
type MountOption func(*LiveViewTest)

// WithParams sets mount parameters.
func WithParams(params core.Params) MountOption {
	return func(lvt *LiveViewTest) {
		lvt.params = params
	}
}

// WithSession sets session data.
func WithSession(session core.Session) MountOption {
	return func(lvt *LiveViewTest) {
		lvt.session = session
	}
}

// WithoutSocket mounts the component the way a plain HTTP render does,
// with no socket attached.
func WithoutSocket() MountOption {
	return func(lvt *LiveViewTest) {
		lvt.socket = nil
	}
}

// Mount creates and mounts a component for testing. Socket-aware
// components get a socket backed by a MockTransport unless WithoutSocket
// is given.
func Mount(t *testing.T, comp core.Component, opts ...MountOption) *LiveViewTest {
	t.Helper()

	transport := NewMockTransport()
	lvt := &LiveViewTest{
		component: comp,
		transport: transport,
		socket:    core.NewSocket(transport.ID, transport),
		params:    core.Params{},
		session:   core.Session{},
		t:         t,
	}
	for _, opt := range opts {
		opt(lvt)
	}

	if setter, ok := comp.(core.SocketAware); ok && lvt.socket != nil {
		setter.SetSocket(lvt.socket)
	}

	if err := comp.Mount(lvt.context(), lvt.params, lvt.session); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	lvt.render()

	t.Cleanup(func() {
		if lvt.socket != nil {
			_ = lvt.socket.Close()
		}
		_ = comp.Terminate(context.Background(), core.TerminateNormal)
	})
	return lvt
}

func (lvt *LiveViewTest) context() context.Context {
	ctx := core.WithParams(context.Background(), lvt.params)
	if lvt.socket != nil {
		ctx = core.WithSocket(ctx, lvt.socket)
	}
	return ctx
}

// Event sends a named event and fails the test if the component returns
// an error.
func (lvt *LiveViewTest) Event(name string, payload map[string]any) *LiveViewTest {
	lvt.t.Helper()
	if err := lvt.TryEvent(name, payload); err != nil {
		lvt.t.Errorf("HandleEvent(%q) failed: %v", name, err)
	}
	return lvt
}

// TryEvent sends a named event and returns the component's error. The
// component is re-rendered either way, as the router does.
func (lvt *LiveViewTest) TryEvent(name string, payload map[string]any) error {
	lvt.t.Helper()
	if payload == nil {
		payload = map[string]any{}
	}
	err := lvt.component.HandleEvent(lvt.context(), name, payload)
	lvt.render()
	return err
}

// Click sends a click event carrying values, as lv-click with lv-value-*
// attributes does.
func (lvt *LiveViewTest) Click(event string, values ...string) *LiveViewTest {
	lvt.t.Helper()
	payload := map[string]any{}
	for i := 0; i+1 < len(values); i += 2 {
		payload[values[i]] = values[i+1]
	}
	return lvt.Event(event, payload)
}

// SendInfo sends an info message to the component.
func (lvt *LiveViewTest) SendInfo(msg any) *LiveViewTest {
	lvt.t.Helper()
	if err := lvt.component.HandleInfo(lvt.context(), msg); err != nil {
		lvt.t.Errorf("HandleInfo failed: %v", err)
	}
	lvt.render()
	return lvt
}

// AwaitInfo waits for the component to post an info message to its own
// socket, delivers it and re-renders.
func (lvt *LiveViewTest) AwaitInfo() *LiveViewTest {
	lvt.t.Helper()
	if lvt.socket == nil {
		lvt.t.Fatal("AwaitInfo: component mounted without a socket")
	}
	select {
	case msg := <-lvt.socket.Info():
		return lvt.SendInfo(msg)
	case <-time.After(DefaultInfoTimeout):
		lvt.t.Fatalf("no info message within %v", DefaultInfoTimeout)
	}
	return lvt
}

func (lvt *LiveViewTest) render() {
	lvt.t.Helper()
	ctx := lvt.context()
	renderer := lvt.component.Render(ctx)
	if renderer == nil {
		lvt.t.Fatal("Render returned nil")
	}

	var buf bytes.Buffer
	if err := renderer.Render(ctx, &buf); err != nil {
		lvt.t.Fatalf("Render failed: %v", err)
	}
	lvt.rendered = buf.String()
	lvt.renders++
}

// Rendered returns the current rendered HTML.
func (lvt *LiveViewTest) Rendered() string {
	return lvt.rendered
}

// Renders returns how many times the component was rendered.
func (lvt *LiveViewTest) Renders() int {
	return lvt.renders
}

// AssertText verifies the rendered output contains text.
func (lvt *LiveViewTest) AssertText(text string) *LiveViewTest {
	lvt.t.Helper()
	if !strings.Contains(lvt.rendered, text) {
		lvt.t.Errorf("Text not found: %q\nRendered HTML:\n%s", text, lvt.rendered)
	}
	return lvt
}

// AssertNoText verifies the rendered output does not contain text.
func (lvt *LiveViewTest) AssertNoText(text string) *LiveViewTest {
	lvt.t.Helper()
	if strings.Contains(lvt.rendered, text) {
		lvt.t.Errorf("Text should not exist: %q", text)
	}
	return lvt
}

// HTML returns an HTMLAssert over the current render.
func (lvt *LiveViewTest) HTML() *HTMLAssert {
	return NewHTMLAssert(lvt.t, lvt.rendered)
}

// Transport returns the mock transport behind the socket.
func (lvt *LiveViewTest) Transport() *MockTransport {
	return lvt.transport
}

// Socket returns the socket given to the component, nil with WithoutSocket.
func (lvt *LiveViewTest) Socket() *core.Socket {
	return lvt.socket
}

// Component returns the component under test.
func (lvt *LiveViewTest) Component() core.Component {
	return lvt.component
}
