package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/relaylabs/ptyshare/internal/codec"
	"github.com/relaylabs/ptyshare/internal/wordlist"
)

// ErrSessionNotFound is returned when a viewer addresses a session id
// that is not in the registry.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionIDInUse is returned when a runner requests an explicit id
// that already names a live session. Reconnecting a disconnected
// runner to an existing session is a non-goal (spec.md); an explicit
// id is only for the "pre-print the join URL" case, where the id is
// chosen before the session exists, not for resuming an old one.
var ErrSessionIDInUse = errors.New("session id already in use")

// Manager is the sessions registry: mapping session id to Session, plus
// the process-wide stats tracker whose lifetime matches the registry's.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	compression codec.Mode
	ttl         time.Duration
	stats       *Stats
	logger      *log.Logger
}

// NewManager creates an empty registry. compression selects the codec
// every new session is created with; ttl is the idle-cleanup delay
// after a session has both exited and lost all viewers.
func NewManager(compression codec.Mode, ttl time.Duration, statsInterval time.Duration, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{
		sessions:    make(map[string]*Session),
		compression: compression,
		ttl:         ttl,
		stats:       NewStats(statsInterval, logger),
		logger:      logger,
	}
	m.stats.SetSessionCount(m.Count)
	return m
}

// Stats exposes the manager's stats tracker so cmd/relay can start its
// periodic logging loop.
func (m *Manager) Stats() *Stats { return m.stats }

// CreateRunnerSession implements the /runner endpoint's session
// creation (spec.md 4.3.1): a fresh Session is always created, never
// reused. If id is empty, a three-word id is generated; if id is
// supplied, it is used verbatim as long as it is not already taken
// (the "pre-print the join URL before the runner connects" case).
// A disconnected runner reconnecting to its old session id is a
// non-goal: that id is simply free to be claimed as a brand new
// session, with a fresh framebuffer and no memory of the old one.
func (m *Manager) CreateRunnerSession(id string, peer *Peer) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if _, taken := m.sessions[id]; taken {
			return nil, ErrSessionIDInUse
		}
	} else {
		var err error
		id, err = m.freshIDLocked()
		if err != nil {
			return nil, err
		}
	}

	c, err := codec.New(m.compression)
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}
	s := newSession(id, m.compression, m.ttl, m.stats, m.logger, m.expire)
	s.codec = c
	if err := s.attachRunner(peer); err != nil {
		return nil, err
	}
	m.sessions[id] = s
	m.stats.SessionCreated()
	return s, nil
}

// freshIDLocked generates a session id guaranteed not to collide with
// an existing one. Collisions are vanishingly unlikely at three words
// but are checked anyway since a collision would silently merge two
// unrelated sessions.
func (m *Manager) freshIDLocked() (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		id, err := wordlist.New()
		if err != nil {
			return "", fmt.Errorf("session manager: generating id: %w", err)
		}
		if _, taken := m.sessions[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("session manager: could not generate a unique id after 10 attempts")
}

// Get looks up a session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// AttachViewer implements the /ws endpoint's join handling: look up the
// session, send the compression mode, a snapshot, and a ready marker.
func (m *Manager) AttachViewer(id string, peer *Peer) (*Session, error) {
	s, ok := m.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := s.attachViewer(peer); err != nil {
		return nil, err
	}
	m.stats.ViewerJoined()
	return s, nil
}

// ViewerDisconnected detaches peer from s and starts the cleanup timer
// if s has already exited and has no other viewers.
func (m *Manager) ViewerDisconnected(s *Session, peer *Peer) {
	s.viewerDisconnected(peer)
	m.stats.ViewerLeft()
}

// RunnerDisconnected detaches the runner from s, marking it exited, and
// starts the cleanup timer if no viewers remain.
func (m *Manager) RunnerDisconnected(s *Session) {
	s.runnerDisconnected()
}

// expire is the cleanup timer's callback. It re-validates eligibility
// under the session's own lock before removing it from the registry,
// since a viewer may have joined in the narrow window between the
// timer firing and this callback running.
func (m *Manager) expire(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return
	}
	if !s.tryExpire() {
		return
	}
	delete(m.sessions, id)
	m.stats.SessionExpired()
}

// Count returns the number of sessions currently in the registry.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
