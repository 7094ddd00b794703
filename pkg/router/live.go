package router

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/imgrooty/roi-calculator/pkg/core"
	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/metrics"
	"github.com/imgrooty/roi-calculator/pkg/protocol"
)

// rawHTML renders a pre-rendered string.
type rawHTML string

func (h rawHTML) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(h))
	return err
}

func renderToString(ctx context.Context, c core.Component) (string, error) {
	renderer := c.Render(ctx)
	if renderer == nil {
		return "", ErrNilRenderer
	}
	buf := getBuffer()
	defer putBuffer(buf)
	if err := renderer.Render(ctx, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// messageLoop serves one connection until the client leaves, the
// transport closes or the socket is closed from the server side.
// Client messages and info messages are handled on this goroutine only,
// so components never see concurrent calls.
func (r *Router) messageLoop(ctx context.Context, session *LiveViewSession) {
	log := logging.L(ctx)
	reason := core.TerminateNormal
	defer func() { r.handleDisconnect(ctx, session, reason) }()

	recv := session.Transport.Receive()
	info := session.Socket.Info()

	for {
		select {
		case msg, ok := <-recv:
			if !ok {
				return
			}
			session.UpdateActivity()
			session.Socket.UpdateActivity()
			if r.metrics != nil {
				r.metrics.MessagesReceived.WithLabelValues(msg.Event).Inc()
			}

			if stop := r.handleMessage(ctx, session, msg); stop {
				return
			}

		case m := <-info:
			if !session.IsMounted() {
				continue
			}
			if err := r.safely(ctx, func() error { return session.Component.HandleInfo(ctx, m) }); err != nil {
				log.Error("handle info", logging.String("type", fmt.Sprintf("%T", m)), logging.Err(err))
			}
			r.renderAndSendDiff(ctx, session)

		case <-session.Socket.Done():
			reason = core.TerminateShutdown
			return

		case <-ctx.Done():
			reason = core.TerminateShutdown
			return
		}
	}
}

// handleMessage dispatches one client message. It reports whether the
// loop should stop.
func (r *Router) handleMessage(ctx context.Context, session *LiveViewSession, msg *protocol.Message) bool {
	switch msg.Type {
	case protocol.MsgHeartbeat:
		r.reply(session, protocol.OkReply(msg.Ref, msg.Topic, nil))

	case protocol.MsgJoin:
		r.handleJoin(ctx, session, msg)

	case protocol.MsgLeave:
		r.reply(session, protocol.OkReply(msg.Ref, msg.Topic, nil))
		return true

	default:
		if !session.IsMounted() {
			r.reply(session, protocol.ErrorReply(msg.Ref, msg.Topic, ErrNotJoined.Error()))
			return false
		}
		err := r.safely(ctx, func() error {
			return session.Component.HandleEvent(ctx, msg.Event, msg.Payload)
		})
		if err != nil {
			logging.L(ctx).Debug("event rejected", logging.String("event", msg.Event), logging.Err(err))
			r.reply(session, protocol.ErrorReply(msg.Ref, msg.Topic, err.Error()))
		} else {
			r.reply(session, protocol.OkReply(msg.Ref, msg.Topic, nil))
		}
		// Components may change state before failing, so render anyway.
		r.renderAndSendDiff(ctx, session)
	}
	return false
}

// handleJoin mounts the component and replies with the full render.
func (r *Router) handleJoin(ctx context.Context, session *LiveViewSession, msg *protocol.Message) {
	session.SetJoinRef(msg.Ref)

	if !session.IsMounted() {
		err := r.safely(ctx, func() error {
			return session.Component.Mount(ctx, session.Params, session.Session)
		})
		if err != nil {
			r.reply(session, protocol.ErrorReply(msg.Ref, msg.Topic, err.Error()))
			return
		}
		session.SetMounted(true)
	}

	var html string
	err := r.safely(ctx, func() error {
		var err error
		html, err = renderToString(ctx, session.Component)
		return err
	})
	if err != nil {
		r.reply(session, protocol.ErrorReply(msg.Ref, msg.Topic, err.Error()))
		return
	}

	// Seed the slot hashes so the next diff carries only changes.
	diffSlots(session, html)

	r.reply(session, protocol.OkReply(msg.Ref, msg.Topic, map[string]any{
		"rendered": html,
		"topic":    session.Topic,
	}))
}

// renderAndSendDiff re-renders the component and pushes the changed slots.
func (r *Router) renderAndSendDiff(ctx context.Context, session *LiveViewSession) {
	var timer *metrics.Timer
	if r.metrics != nil {
		timer = metrics.NewTimer()
	}

	var html string
	err := r.safely(ctx, func() error {
		var err error
		html, err = renderToString(ctx, session.Component)
		return err
	})
	if err != nil {
		logging.L(ctx).Error("render failed", logging.Err(err))
		return
	}

	payload := diffSlots(session, html)
	if timer != nil {
		timer.ObserveDuration(r.metrics.RenderDuration)
	}
	if payload.IsEmpty() {
		return
	}
	if err := session.Socket.SendDiff(payload); err != nil {
		logging.L(ctx).Debug("diff not sent", logging.Err(err))
	}
}

// safely runs fn, converting a panic into an error.
func (r *Router) safely(ctx context.Context, fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.metrics != nil {
				r.metrics.PanicsTotal.Inc()
			}
			logging.L(ctx).Error("component panic",
				logging.String("panic", fmt.Sprint(rec)),
				logging.String("stack", string(debug.Stack())),
			)
			err = ErrComponentPanic
		}
	}()
	return fn()
}

func (r *Router) reply(session *LiveViewSession, msg *protocol.Message) {
	if err := session.Transport.Send(msg); err != nil {
		r.log.Debug("reply not sent",
			logging.String("socket", session.SocketID),
			logging.String("ref", msg.Ref),
			logging.Err(err),
		)
	}
}

// handleDisconnect terminates the component and releases the session.
// It runs once per session.
func (r *Router) handleDisconnect(ctx context.Context, session *LiveViewSession, reason core.TerminateReason) {
	session.closeOnce.Do(func() {
		if session.IsMounted() {
			_ = r.safely(ctx, func() error {
				return session.Component.Terminate(context.WithoutCancel(ctx), reason)
			})
		}
		r.sessions.Remove(session.ID)
		session.Socket.Close()

		if r.metrics != nil {
			r.metrics.LiveSessions.Dec()
		}
		logging.L(ctx).Info("live session closed", logging.String("reason", reason.String()))
	})
}
