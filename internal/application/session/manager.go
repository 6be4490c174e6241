package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/lexguard/internal/application"
	appchat "github.com/bryanwahyu/lexguard/internal/application/chat"
	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
	"github.com/bryanwahyu/lexguard/internal/domain/chat"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Session is the state of one dashboard: its message log, its analysis
// holder and the controller tying them to the responder.
type Session struct {
	ID           string
	Log          *chat.Log
	Holder       *analysis.Holder
	Conversation *appchat.Controller
	CreatedAt    time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Manager keeps the live sessions in memory. Nothing is persisted; a session
// lives until it is deleted or stays idle longer than the TTL.
type Manager struct {
	responder   chat.Responder
	clock       application.Clock
	ttl         time.Duration
	chatTimeout time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(responder chat.Responder, clock application.Clock, ttl, chatTimeout time.Duration) *Manager {
	return &Manager{
		responder:   responder,
		clock:       clock,
		ttl:         ttl,
		chatTimeout: chatTimeout,
		sessions:    make(map[string]*Session),
	}
}

// Create starts a new session, optionally seeded with the assistant greeting.
func (m *Manager) Create(greeting bool) *Session {
	now := m.clock.Now()
	log := chat.NewLog()
	holder := analysis.NewHolder()
	s := &Session{
		ID:     uuid.New().String(),
		Log:    log,
		Holder: holder,
		Conversation: appchat.NewController(log, holder, m.responder,
			appchat.WithClock(m.clock),
			appchat.WithTimeout(m.chatTimeout),
		),
		CreatedAt: now,
		lastSeen:  now,
	}
	if greeting {
		s.Conversation.Greet()
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(m.clock.Now())
	return s, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed. A session with a pending reply is kept.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.clock.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) && !s.Conversation.Pending() {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick until ctx is done.
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				slog.Info("expired sessions removed", "count", n, "live", m.Len())
			}
		}
	}
}
