package memory

import (
	"context"
	"sync"
	"time"

	"labor-contract/types"
)

// SessionStore keeps sessions in process. Callers get copies; nothing they
// hold aliases the stored session.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*types.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*types.Session)}
}

func (s *SessionStore) Create(_ context.Context, sess *types.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, types.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (s *SessionStore) Save(_ context.Context, sess *types.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID]; !ok {
		return types.ErrSessionNotFound
	}
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return types.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// PurgeIdle drops sessions last updated before the cutoff and returns their ids.
func (s *SessionStore) PurgeIdle(_ context.Context, before time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(before) {
			delete(s.sessions, id)
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
