package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/protocol"
)

// WebSocket implements Transport over a coder/websocket connection.
// Frames are encoded with the codec chosen at construction: text frames
// for JSON, binary frames for MsgPack.
type WebSocket struct {
	cfg   Config
	codec protocol.Codec
	log   logging.Logger

	conn      *websocket.Conn
	connected atomic.Bool

	sendCh    chan *protocol.Message
	recvCh    chan *protocol.Message
	closeCh   chan struct{}
	closeOnce sync.Once
}

// NewWebSocket creates an unconnected WebSocket transport.
func NewWebSocket(cfg Config, codec protocol.Codec, log logging.Logger) *WebSocket {
	cfg = cfg.withDefaults()
	if codec == nil {
		codec = protocol.NewJSONCodec()
	}
	if log == nil {
		log = logging.NopLogger{}
	}
	return &WebSocket{
		cfg:     cfg,
		codec:   codec,
		log:     log,
		sendCh:  make(chan *protocol.Message, cfg.SendBufferSize),
		recvCh:  make(chan *protocol.Message, cfg.ReceiveBufferSize),
		closeCh: make(chan struct{}),
	}
}

// Dial connects to a WebSocket endpoint as a client.
func Dial(ctx context.Context, rawURL string, cfg Config, codec protocol.Codec, log logging.Logger) (*WebSocket, error) {
	t := NewWebSocket(cfg, codec, log)

	conn, _, err := websocket.Dial(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}
	t.start(conn)
	return t, nil
}

// Upgrade upgrades an HTTP connection to WebSocket (server-side).
// The Origin header is checked first to prevent cross-site hijacking.
func (t *WebSocket) Upgrade(w http.ResponseWriter, r *http.Request) error {
	origin := r.Header.Get("Origin")
	if !t.isOriginAllowed(origin, r.Host) {
		t.log.Warn("websocket origin rejected", logging.String("origin", origin))
		http.Error(w, "Forbidden: Origin not allowed", http.StatusForbidden)
		return ErrOriginNotAllowed
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Origin has been validated above.
		InsecureSkipVerify: true,
	})
	if err != nil {
		return fmt.Errorf("accept websocket: %w", err)
	}
	t.start(conn)
	return nil
}

func (t *WebSocket) start(conn *websocket.Conn) {
	conn.SetReadLimit(t.cfg.MaxMessageSize)
	t.conn = conn
	t.connected.Store(true)

	go t.readLoop()
	go t.writeLoop()
	go t.pingLoop()
}

// isOriginAllowed checks if the origin is allowed for WebSocket connections.
func (t *WebSocket) isOriginAllowed(origin, requestHost string) bool {
	if t.cfg.InsecureDevMode {
		return true
	}

	// No Origin header: not a browser cross-site request.
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Host == requestHost {
		return true
	}

	for _, allowed := range t.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if allowedURL, err := url.Parse(allowed); err == nil && allowedURL.Host != "" && allowedURL.Host == originURL.Host {
			return true
		}
	}
	return false
}

// Codec returns the frame codec.
func (t *WebSocket) Codec() protocol.Codec { return t.codec }

// Send queues a message for writing.
func (t *WebSocket) Send(msg *protocol.Message) error {
	if !t.IsConnected() {
		return ErrNotConnected
	}

	timer := time.NewTimer(t.cfg.WriteTimeout)
	defer timer.Stop()

	select {
	case t.sendCh <- msg:
		return nil
	case <-t.closeCh:
		return ErrConnectionClosed
	case <-timer.C:
		return ErrSendTimeout
	}
}

// Receive returns the incoming message channel.
func (t *WebSocket) Receive() <-chan *protocol.Message { return t.recvCh }

// Done is closed once the transport has shut down.
func (t *WebSocket) Done() <-chan struct{} { return t.closeCh }

// IsConnected returns true while the connection is open.
func (t *WebSocket) IsConnected() bool { return t.connected.Load() }

// Close closes the WebSocket connection. It is safe to call more than once.
func (t *WebSocket) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.connected.Store(false)
		close(t.closeCh)
		if t.conn != nil {
			err = t.conn.Close(websocket.StatusNormalClosure, "closing")
		}
	})
	return err
}

func (t *WebSocket) readLoop() {
	defer close(t.recvCh)
	defer t.Close()

	for {
		ctx, cancel := context.WithTimeout(context.Background(), t.cfg.ReadTimeout)
		_, data, err := t.conn.Read(ctx)
		cancel()

		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				select {
				case <-t.closeCh:
				default:
					t.log.Debug("websocket read ended", logging.Err(err))
				}
			}
			return
		}

		msg, err := t.codec.Decode(data)
		if err != nil {
			t.log.Debug("dropping undecodable frame",
				logging.String("codec", t.codec.Name()),
				logging.Err(err),
			)
			continue
		}

		if msg.Event == "ping" {
			t.sendPong(msg)
			continue
		}

		select {
		case t.recvCh <- msg:
		case <-t.closeCh:
			return
		default:
			t.log.Warn("receive buffer full, dropping message", logging.String("event", msg.Event))
		}
	}
}

func (t *WebSocket) writeLoop() {
	frame := websocket.MessageText
	if t.codec.Binary() {
		frame = websocket.MessageBinary
	}

	for {
		select {
		case msg := <-t.sendCh:
			data, err := t.codec.Encode(msg)
			if err != nil {
				t.log.Error("encode message", logging.String("event", msg.Event), logging.Err(err))
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), t.cfg.WriteTimeout)
			err = t.conn.Write(ctx, frame, data)
			cancel()

			if err != nil {
				t.log.Debug("websocket write failed", logging.Err(err))
				t.Close()
				return
			}

		case <-t.closeCh:
			return
		}
	}
}

// pingLoop sends periodic pings to keep the connection alive.
func (t *WebSocket) pingLoop() {
	ticker := time.NewTicker(t.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), t.cfg.WriteTimeout)
			_ = t.conn.Ping(ctx)
			cancel()
		case <-t.closeCh:
			return
		}
	}
}

func (t *WebSocket) sendPong(ping *protocol.Message) {
	select {
	case t.sendCh <- protocol.OkReply(ping.Ref, ping.Topic, nil):
	default:
	}
}

var _ Transport = (*WebSocket)(nil)
