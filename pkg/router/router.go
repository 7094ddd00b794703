// Package router serves LiveView components over HTTP and WebSocket.
//
// A GET renders the component inside its layout. The page script then
// opens a WebSocket on the same path, joins, and from then on every event
// is handled by the server-side component, re-rendered and pushed back
// to the browser as a slot diff.
package router

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imgrooty/roi-calculator/pkg/core"
	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/metrics"
	"github.com/imgrooty/roi-calculator/pkg/protocol"
	"github.com/imgrooty/roi-calculator/pkg/transport"
)

// Common router errors.
var (
	ErrNotJoined      = errors.New("not joined")
	ErrComponentPanic = errors.New("internal error")
)

// Router handles HTTP routing for LiveView components.
type Router struct {
	mux          *http.ServeMux
	middleware   []Middleware
	errorHandler ErrorHandler

	sessions  *LiveViewSessionManager
	codecs    *protocol.CodecRegistry
	transport transport.Config

	log     logging.Logger
	metrics *metrics.Metrics

	// wg tracks message loops so Shutdown can wait for them.
	wg sync.WaitGroup

	mu sync.RWMutex
}

// LiveRoute defines a route that renders a LiveView component.
type LiveRoute struct {
	Path string

	// Component creates one component instance per connection.
	Component func() core.Component

	// Layout wraps the component's HTML into a full document on the
	// initial HTTP render.
	Layout Layout

	Middleware []Middleware
}

// Layout renders a document around the live content.
type Layout func(content string) core.Renderer

// Middleware is a function that wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// ErrorHandler handles errors during request processing.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(log logging.Logger) Option {
	return func(r *Router) { r.log = log }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

// WithTransportConfig sets the WebSocket transport configuration.
func WithTransportConfig(cfg transport.Config) Option {
	return func(r *Router) { r.transport = cfg }
}

// WithSessionConfig configures the session manager.
func WithSessionConfig(cfg SessionManagerConfig) Option {
	return func(r *Router) { r.sessions = NewLiveViewSessionManager(cfg) }
}

// WithDefaultCodec selects the codec used when the client does not ask
// for one.
func WithDefaultCodec(name string) Option {
	return func(r *Router) {
		if err := r.codecs.SetDefault(name); err != nil {
			r.log.Warn("ignoring default codec", logging.String("codec", name), logging.Err(err))
		}
	}
}

// New creates a new router.
func New(opts ...Option) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		sessions:  NewLiveViewSessionManager(DefaultSessionManagerConfig()),
		codecs:    protocol.NewCodecRegistry(),
		transport: transport.DefaultConfig(),
		log:       logging.NopLogger{},
		errorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware to the router. It applies to routes registered
// afterwards.
func (r *Router) Use(mw Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw)
}

// SetErrorHandler sets the error handler.
func (r *Router) SetErrorHandler(handler ErrorHandler) {
	r.errorHandler = handler
}

// SessionManager returns the session manager.
func (r *Router) SessionManager() *LiveViewSessionManager {
	return r.sessions
}

// Codecs returns the codec registry.
func (r *Router) Codecs() *protocol.CodecRegistry {
	return r.codecs
}

// Live registers a LiveView route.
func (r *Router) Live(path string, component func() core.Component, opts ...RouteOption) {
	route := &LiveRoute{
		Path:      path,
		Component: component,
	}
	for _, opt := range opts {
		opt(route)
	}

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.renderLive(w, req, route)
	})
	for i := len(route.Middleware) - 1; i >= 0; i-- {
		h = route.Middleware[i](h)
	}
	r.Handle(path, h)
}

// Handle registers a standard HTTP handler behind the global middleware.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mu.RLock()
	middleware := make([]Middleware, len(r.middleware))
	copy(middleware, r.middleware)
	r.mu.RUnlock()

	h := handler
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	r.mux.Handle(pattern, h)
}

// HandleFunc registers a standard HTTP handler function.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.Handle(pattern, handler)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// renderLive renders a LiveView component, or upgrades to WebSocket.
func (r *Router) renderLive(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	if isWebSocketRequest(req) {
		r.handleWebSocket(w, req, route.Component())
		return
	}

	ctx := req.Context()
	component := route.Component()

	if err := component.Mount(ctx, extractParams(req), extractSession(req)); err != nil {
		r.errorHandler(w, req, err)
		return
	}

	html, err := renderToString(ctx, component)
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}

	var page core.Renderer = rawHTML(html)
	if route.Layout != nil {
		page = route.Layout(html)
	}

	buf := getBuffer()
	defer putBuffer(buf)
	if err := page.Render(ctx, buf); err != nil {
		r.errorHandler(w, req, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)

	_ = component.Terminate(ctx, core.TerminateNormal)
}

// handleWebSocket upgrades the request and starts the session's message loop.
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request, component core.Component) {
	codec, err := r.codecs.Lookup(req.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	socketID := uuid.NewString()
	log := r.log.With(logging.String("socket", socketID), logging.String("codec", codec.Name()))

	ws := transport.NewWebSocket(r.transport, codec, log)
	if err := ws.Upgrade(w, req); err != nil {
		log.Warn("websocket upgrade failed", logging.Err(err))
		return
	}

	socket := core.NewSocket(socketID, NewTransportAdapter(ws))
	if sa, ok := component.(core.SocketAware); ok {
		sa.SetSocket(socket)
	}

	session, evicted := r.sessions.Create(socketID, component, extractParams(req), extractSession(req))
	session.Transport = ws
	session.Socket = socket
	if evicted != nil {
		log.Warn("session limit reached, evicting", logging.String("evicted", evicted.SocketID))
		evicted.Socket.Close()
	}

	if r.metrics != nil {
		r.metrics.LiveSessions.Inc()
	}
	log.Info("live session connected")

	// The connection outlives the upgrade request, so the loop gets its
	// own context.
	ctx := core.WithParams(core.WithSocket(context.Background(), socket), session.Params)
	ctx = logging.ContextWithLogger(ctx, log)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.messageLoop(ctx, session)
	}()
}

// Shutdown closes every live session and waits for their loops to end.
func (r *Router) Shutdown(ctx context.Context) error {
	for _, s := range r.sessions.All() {
		s.Socket.Close()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReapIdle closes sessions idle for longer than the session TTL and
// returns how many were closed.
func (r *Router) ReapIdle(now time.Time) int {
	idle := r.sessions.Idle(now)
	for _, s := range idle {
		s.Socket.Close()
	}
	return len(idle)
}

// StartReaper runs ReapIdle every interval until ctx is done.
func (r *Router) StartReaper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				if n := r.ReapIdle(now); n > 0 {
					r.log.Info("reaped idle sessions", logging.Int("count", n))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// extractSession collects cookies into session data.
func extractSession(req *http.Request) core.Session {
	session := make(core.Session)
	for _, cookie := range req.Cookies() {
		session["cookie:"+cookie.Name] = cookie.Value
	}
	if id := GetRequestID(req.Context()); id != "" {
		session["request_id"] = id
	}
	return session
}

// extractParams extracts query string parameters.
func extractParams(req *http.Request) core.Params {
	params := make(core.Params)
	for key, values := range req.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// isWebSocketRequest checks if this is a WebSocket upgrade request.
func isWebSocketRequest(req *http.Request) bool {
	return strings.Contains(strings.ToLower(req.Header.Get("Upgrade")), "websocket")
}

// RouteOption configures a LiveRoute.
type RouteOption func(*LiveRoute)

// WithLayout sets the document layout.
func WithLayout(layout Layout) RouteOption {
	return func(r *LiveRoute) {
		r.Layout = layout
	}
}

// WithRouteMiddleware adds middleware to the route.
func WithRouteMiddleware(mw ...Middleware) RouteOption {
	return func(r *LiveRoute) {
		r.Middleware = append(r.Middleware, mw...)
	}
}
