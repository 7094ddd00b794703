package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrInvalidMessage = errors.New("invalid message format")
	ErrUnknownCodec   = errors.New("unknown codec type")
)

// Codec frames messages for one socket. A connection picks its codec with
// the ?codec= query parameter when it is opened.
type Codec interface {
	Encode(msg *Message) ([]byte, error)
	// Decode rejects frames without an event and fills in Type.
	Decode(data []byte) (*Message, error)
	Name() string
	// Binary reports whether frames go out as binary rather than text.
	Binary() bool
}

// marshalCodec builds a Codec from a marshal/unmarshal pair.
type marshalCodec struct {
	name      string
	binary    bool
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func (c *marshalCodec) Name() string { return c.name }
func (c *marshalCodec) Binary() bool { return c.binary }

func (c *marshalCodec) Encode(msg *Message) ([]byte, error) {
	return c.marshal(msg)
}

func (c *marshalCodec) Decode(data []byte) (*Message, error) {
	msg := new(Message)
	if err := c.unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if msg.Event == "" {
		return nil, fmt.Errorf("%w: missing event", ErrInvalidMessage)
	}
	if msg.Payload == nil {
		msg.Payload = map[string]any{}
	}
	msg.Type = TypeOf(msg.Event)
	return msg, nil
}

// NewJSONCodec returns the text codec the browser client speaks.
func NewJSONCodec() Codec {
	return &marshalCodec{name: "json", marshal: json.Marshal, unmarshal: json.Unmarshal}
}

// NewMsgPackCodec returns a MessagePack codec sending binary frames.
func NewMsgPackCodec() Codec {
	return &marshalCodec{name: "msgpack", binary: true, marshal: msgpack.Marshal, unmarshal: msgpack.Unmarshal}
}

// CodecRegistry maps codec names to codecs. It starts with json, the
// default, and msgpack.
type CodecRegistry struct {
	mu       sync.RWMutex
	codecs   map[string]Codec
	fallback Codec
}

func NewCodecRegistry() *CodecRegistry {
	def := NewJSONCodec()
	r := &CodecRegistry{codecs: map[string]Codec{}, fallback: def}
	r.Register(def)
	r.Register(NewMsgPackCodec())
	return r
}

// Register adds codec, replacing any codec of the same name.
func (r *CodecRegistry) Register(codec Codec) {
	r.mu.Lock()
	r.codecs[codec.Name()] = codec
	r.mu.Unlock()
}

func (r *CodecRegistry) Get(name string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[name]
	return c, ok
}

// Lookup returns the named codec. An empty name selects the default.
func (r *CodecRegistry) Lookup(name string) (Codec, error) {
	if name == "" {
		return r.Default(), nil
	}
	if c, ok := r.Get(name); ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

func (r *CodecRegistry) Default() Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// SetDefault makes the named codec the default.
func (r *CodecRegistry) SetDefault(name string) error {
	c, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	r.mu.Lock()
	r.fallback = c
	r.mu.Unlock()
	return nil
}
