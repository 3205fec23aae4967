package guidance

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nafisahi/swiftaid/internal/catalog"
	"github.com/nafisahi/swiftaid/internal/util"
)

// ErrSessionNotFound is returned for unknown or already closed sessions.
var ErrSessionNotFound = fmt.Errorf("guidance session not found")

// Session pairs an engine with its identifier.
type Session struct {
	ID        string
	Engine    *Engine
	CreatedAt time.Time
}

// Manager owns the live guidance sessions. Sessions are in-memory only:
// closing one (or shutting the service down) discards its checklist and
// timer state.
type Manager struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	sessions map[string]*Session
}

// NewManager creates a session manager over the given catalog.
func NewManager(cat *catalog.Catalog) *Manager {
	slog.Debug("Creating guidance session manager")
	return &Manager{
		catalog:  cat,
		sessions: make(map[string]*Session),
	}
}

// Open creates a new session for a topic and returns it.
func (m *Manager) Open(topicID string) (*Session, error) {
	topic, err := m.catalog.GetTopic(topicID)
	if err != nil {
		slog.Warn("Guidance Open: unknown topic", "topic", topicID)
		return nil, err
	}

	s := &Session{
		ID:        util.GenerateSessionID(),
		Engine:    NewEngine(topic),
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	slog.Info("Guidance session opened", "session", s.ID, "topic", topicID)
	return s, nil
}

// Get returns a live session by ID.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return s, nil
}

// Close disposes a session, stopping any timers it armed. Closing an
// unknown session is an error so clients notice double-dismissals.
func (m *Manager) Close(sessionID string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	s.Engine.Close()
	slog.Info("Guidance session closed", "session", sessionID)
	return nil
}

// CloseAll disposes every live session. Called on service shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Engine.Close()
	}
	slog.Debug("Guidance sessions closed", "count", len(sessions))
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
