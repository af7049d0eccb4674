package session

import (
	"context"
	"sync"
	"time"

	"cancerdetect/internal/logger"
)

// Store keeps browser sessions in memory. Nothing is persisted across restarts.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    ValidationOrder
	ttl      time.Duration
	logger   *logger.Logger
}

// NewStore creates a store whose sessions expire after ttl without activity.
func NewStore(order ValidationOrder, ttl time.Duration, logger *logger.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		order:    order,
		ttl:      ttl,
		logger:   logger,
	}
}

// Get returns the session with id, creating it when absent.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	sess, exists := s.sessions[id]
	s.mu.RUnlock()

	if exists {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Double-check, another request may have created it.
	if sess, exists := s.sessions[id]; exists {
		return sess
	}
	sess = New(id, s.order)
	s.sessions[id] = sess
	return sess
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run sweeps expired sessions until ctx is done.
func (s *Store) Run(ctx context.Context) error {
	if s.ttl <= 0 {
		<-ctx.Done()
		return nil
	}

	interval := s.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// Sweep removes sessions idle since before now-ttl. Sessions in the middle of a dispatch are kept.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.dispatching() {
			continue
		}
		if now.Sub(sess.idleSince()) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("Expired %d idle sessions, %d remaining", removed, len(s.sessions))
	}
	return removed
}
