package router

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imgrooty/roi-calculator/pkg/core"
	"github.com/imgrooty/roi-calculator/pkg/transport"
)

// LiveViewSession binds one WebSocket connection to its component.
type LiveViewSession struct {
	ID        string
	SocketID  string
	Component core.Component
	Socket    *core.Socket
	Transport transport.Transport
	Params    core.Params
	Session   core.Session

	// Topic is the channel topic, "lv:" + SocketID.
	Topic string

	CreatedAt time.Time

	// Version orders diffs on the client.
	Version uint64

	lastActivity time.Time
	mounted      bool
	joinRef      string
	slotHashes   map[string]uint64
	closeOnce    sync.Once

	mu sync.RWMutex
}

// NewLiveViewSession creates a session for a freshly accepted socket.
func NewLiveViewSession(socketID string, comp core.Component, params core.Params, session core.Session) *LiveViewSession {
	now := time.Now()
	return &LiveViewSession{
		ID:           uuid.NewString(),
		SocketID:     socketID,
		Component:    comp,
		Params:       params,
		Session:      session,
		Topic:        "lv:" + socketID,
		CreatedAt:    now,
		lastActivity: now,
	}
}

// UpdateActivity records activity on the session.
func (s *LiveViewSession) UpdateActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
}

// LastActivity returns the last activity timestamp.
func (s *LiveViewSession) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

// SetMounted marks the component as mounted.
func (s *LiveViewSession) SetMounted(mounted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = mounted
}

// IsMounted reports whether the component has been mounted.
func (s *LiveViewSession) IsMounted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mounted
}

// SetJoinRef stores the ref of the join message.
func (s *LiveViewSession) SetJoinRef(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joinRef = ref
}

// JoinRef returns the ref of the join message.
func (s *LiveViewSession) JoinRef() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joinRef
}

// nextVersion bumps and returns the diff version.
func (s *LiveViewSession) nextVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Version++
	return s.Version
}

func (s *LiveViewSession) swapSlotHashes(hashes map[string]uint64) map[string]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.slotHashes
	s.slotHashes = hashes
	return prev
}

// LiveViewSessionManager tracks the active sessions.
type LiveViewSessionManager struct {
	sessions map[string]*LiveViewSession
	bySocket map[string]*LiveViewSession

	// maxSessions caps live sessions, 0 means unlimited.
	maxSessions int

	// sessionTTL is how long an idle session survives Cleanup.
	sessionTTL time.Duration

	mu sync.RWMutex
}

// SessionManagerConfig configures the session manager.
type SessionManagerConfig struct {
	MaxSessions int
	SessionTTL  time.Duration
}

// DefaultSessionManagerConfig returns the default configuration.
func DefaultSessionManagerConfig() SessionManagerConfig {
	return SessionManagerConfig{
		MaxSessions: 10000,
		SessionTTL:  30 * time.Minute,
	}
}

// NewLiveViewSessionManager creates a session manager.
func NewLiveViewSessionManager(cfg SessionManagerConfig) *LiveViewSessionManager {
	return &LiveViewSessionManager{
		sessions:    make(map[string]*LiveViewSession),
		bySocket:    make(map[string]*LiveViewSession),
		maxSessions: cfg.MaxSessions,
		sessionTTL:  cfg.SessionTTL,
	}
}

// Create registers a new session, evicting the least recently active one
// when the manager is full. The evicted session is returned so the caller
// can close it.
func (m *LiveViewSessionManager) Create(socketID string, comp core.Component, params core.Params, session core.Session) (created, evicted *LiveViewSession) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		evicted = m.evictOldestLocked()
	}

	created = NewLiveViewSession(socketID, comp, params, session)
	m.sessions[created.ID] = created
	m.bySocket[socketID] = created
	return created, evicted
}

// Get returns a session by ID.
func (m *LiveViewSessionManager) Get(sessionID string) (*LiveViewSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	return s, ok
}

// GetBySocket returns a session by socket ID.
func (m *LiveViewSessionManager) GetBySocket(socketID string) (*LiveViewSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.bySocket[socketID]
	return s, ok
}

// Remove deletes a session.
func (m *LiveViewSessionManager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		delete(m.bySocket, s.SocketID)
		delete(m.sessions, sessionID)
	}
}

// Count returns the number of active sessions.
func (m *LiveViewSessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// All returns a snapshot of the active sessions.
func (m *LiveViewSessionManager) All() []*LiveViewSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*LiveViewSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, s)
	}
	return result
}

// Idle returns the sessions inactive for longer than the TTL.
func (m *LiveViewSessionManager) Idle(now time.Time) []*LiveViewSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var idle []*LiveViewSession
	for _, s := range m.sessions {
		if now.Sub(s.LastActivity()) > m.sessionTTL {
			idle = append(idle, s)
		}
	}
	return idle
}

// must be called with m.mu held
func (m *LiveViewSessionManager) evictOldestLocked() *LiveViewSession {
	var oldest *LiveViewSession
	for _, s := range m.sessions {
		if oldest == nil || s.LastActivity().Before(oldest.LastActivity()) {
			oldest = s
		}
	}
	if oldest != nil {
		delete(m.bySocket, oldest.SocketID)
		delete(m.sessions, oldest.ID)
	}
	return oldest
}
