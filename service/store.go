package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"labor-contract/types"
)

var (
	ErrSessionNotFound  = types.ErrSessionNotFound
	ErrNotReviewable    = errors.New("contract has not reached the review step")
	ErrNoJobDescription = errors.New("job description is empty")
)

// SessionStore persists wizard sessions. Get returns a copy the caller may
// modify; Save replaces the stored session wholesale.
type SessionStore interface {
	Create(ctx context.Context, s *types.Session) error
	Get(ctx context.Context, id string) (*types.Session, error)
	Save(ctx context.Context, s *types.Session) error
	Delete(ctx context.Context, id string) error
	PurgeIdle(ctx context.Context, before time.Time) ([]string, error)
}

// keyedMutex serializes read-modify-write cycles on one session.
type keyedMutex struct {
	m sync.Map
}

func (k *keyedMutex) lock(key string) func() {
	v, _ := k.m.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (k *keyedMutex) forget(key string) {
	k.m.Delete(key)
}

func (k *keyedMutex) len() int {
	n := 0
	k.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
