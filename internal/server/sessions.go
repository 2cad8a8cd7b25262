package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/editor"
	"go.uber.org/zap"
)

// DefaultSessionTTL is how long an untouched editing session lives.
const DefaultSessionTTL = time.Hour

type session struct {
	editor   *editor.Editor
	lastUsed time.Time
}

// SessionStore holds editing sessions in memory and expires idle ones.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewSessionStore returns an empty store. A ttl <= 0 uses DefaultSessionTTL.
func NewSessionStore(ttl time.Duration, logger *zap.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		sessions: make(map[uuid.UUID]*session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Create registers an editor and returns its session ID.
func (s *SessionStore) Create(ed *editor.Editor) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = &session{editor: ed, lastUsed: s.now()}
	s.mu.Unlock()
	return id
}

// Get returns the session's editor and marks it used.
func (s *SessionStore) Get(id string) (*editor.Editor, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, &ErrSessionNotFound{ID: id}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	sess.lastUsed = s.now()
	return sess.editor, nil
}

// Delete removes a session and reports whether it existed.
func (s *SessionStore) Delete(id string) bool {
	key, err := uuid.Parse(id)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[key]; !ok {
		return false
	}
	delete(s.sessions, key)
	return true
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Expire removes sessions idle for longer than the TTL and returns how many were removed.
func (s *SessionStore) Expire() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Start runs the janitor every interval until Stop is called.
func (s *SessionStore) Start(interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 4
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Expire(); n > 0 {
					s.logger.Debug("expired idle sessions", zap.Int("count", n))
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop stops the janitor and waits for it. It is safe to call without Start or more than once.
func (s *SessionStore) Stop() {
	if s.stop == nil {
		return
	}
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}
