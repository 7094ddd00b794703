// Package protocol defines the wire messages exchanged between the browser
// client and the LiveView router, and the codecs that frame them.
package protocol

import "time"

// MessageType classifies a message by its event name.
type MessageType uint8

const (
	MsgEvent MessageType = iota
	MsgJoin
	MsgLeave
	MsgReply
	MsgDiff
	MsgError
	MsgHeartbeat
)

// Reserved event names. Anything else is a component event.
const (
	EventJoin      = "phx_join"
	EventLeave     = "phx_leave"
	EventReply     = "phx_reply"
	EventError     = "phx_error"
	EventHeartbeat = "heartbeat"
	EventDiff      = "diff"
)

var reserved = map[string]MessageType{
	EventJoin:      MsgJoin,
	EventLeave:     MsgLeave,
	EventReply:     MsgReply,
	EventError:     MsgError,
	EventHeartbeat: MsgHeartbeat,
	EventDiff:      MsgDiff,
}

var typeNames = [...]string{"event", "join", "leave", "reply", "diff", "error", "heartbeat"}

func (t MessageType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// TypeOf maps an event name to its message type.
func TypeOf(event string) MessageType {
	if t, ok := reserved[event]; ok {
		return t
	}
	return MsgEvent
}

// Message is one frame on the socket. Type is derived from Event when a
// frame is decoded and never sent.
type Message struct {
	Type MessageType `json:"-" msgpack:"-"`

	Ref     string         `json:"ref,omitempty" msgpack:"ref,omitempty"`
	Topic   string         `json:"topic" msgpack:"topic"`
	Event   string         `json:"event,omitempty" msgpack:"event,omitempty"`
	Payload map[string]any `json:"payload,omitempty" msgpack:"payload,omitempty"`
	// Unix milliseconds.
	Timestamp int64  `json:"ts,omitempty" msgpack:"ts,omitempty"`
	JoinRef   string `json:"join_ref,omitempty" msgpack:"join_ref,omitempty"`
}

// NewMessage stamps a message for event on topic.
func NewMessage(topic, event string, payload map[string]any) *Message {
	if payload == nil {
		payload = map[string]any{}
	}
	return &Message{
		Type:      TypeOf(event),
		Topic:     topic,
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
}

// WithRef sets the correlation ref and returns m.
func (m *Message) WithRef(ref string) *Message {
	m.Ref = ref
	return m
}

// GetPayloadString returns payload[key] if it is a string.
func (m *Message) GetPayloadString(key string) string {
	s, _ := m.Payload[key].(string)
	return s
}

// Reply statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ReplyMessage answers the message with the given ref.
func ReplyMessage(ref, topic, status string, response map[string]any) *Message {
	if response == nil {
		response = map[string]any{}
	}
	payload := map[string]any{"status": status, "response": response}
	return NewMessage(topic, EventReply, payload).WithRef(ref)
}

func OkReply(ref, topic string, response map[string]any) *Message {
	return ReplyMessage(ref, topic, StatusOK, response)
}

// ErrorReply carries reason under response.reason.
func ErrorReply(ref, topic, reason string) *Message {
	return ReplyMessage(ref, topic, StatusError, map[string]any{"reason": reason})
}

// DiffMessage pushes slot changes to the client.
func DiffMessage(topic string, diff map[string]any) *Message {
	return NewMessage(topic, EventDiff, diff)
}
