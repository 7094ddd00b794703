package config

import "time"

// Timeout presets.
const (
	PresetDefault = "default"
	PresetStrict  = "strict"
	PresetRelaxed = "relaxed"
)

// Timeouts are the effective server timeouts.
type Timeouts struct {
	// Read and Write bound plain HTTP requests.
	Read  time.Duration
	Write time.Duration

	// WebSocketRead is the longest a live connection may stay silent.
	WebSocketRead  time.Duration
	WebSocketWrite time.Duration

	// SessionIdle closes live sessions without activity.
	SessionIdle time.Duration

	Shutdown time.Duration
}

var presets = map[string]Timeouts{
	PresetDefault: {
		Read:           30 * time.Second,
		Write:          30 * time.Second,
		WebSocketRead:  60 * time.Second,
		WebSocketWrite: 10 * time.Second,
		SessionIdle:    30 * time.Minute,
		Shutdown:       30 * time.Second,
	},
	PresetStrict: {
		Read:           15 * time.Second,
		Write:          15 * time.Second,
		WebSocketRead:  30 * time.Second,
		WebSocketWrite: 5 * time.Second,
		SessionIdle:    10 * time.Minute,
		Shutdown:       15 * time.Second,
	},
	PresetRelaxed: {
		Read:           120 * time.Second,
		Write:          120 * time.Second,
		WebSocketRead:  300 * time.Second,
		WebSocketWrite: 30 * time.Second,
		SessionIdle:    2 * time.Hour,
		Shutdown:       60 * time.Second,
	},
}

// Timeouts resolves the preset and applies explicit overrides.
func (s ServerConfig) ResolveTimeouts() Timeouts {
	t, ok := presets[s.Timeouts]
	if !ok {
		t = presets[PresetDefault]
	}
	if s.ReadTimeout > 0 {
		t.Read = s.ReadTimeout
	}
	if s.WriteTimeout > 0 {
		t.Write = s.WriteTimeout
	}
	if s.ShutdownTimeout > 0 {
		t.Shutdown = s.ShutdownTimeout
	}
	return t
}
