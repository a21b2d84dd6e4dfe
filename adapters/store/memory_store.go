package store

import (
	"context"
	"sync"
	"time"

	"github.com/janus-auth/janus/core"
	"github.com/janus-auth/janus/ports"
)

type record struct {
	token     string
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the SessionStore interface,
// intended for tests and single-node development. Expired records are dropped
// lazily on read.
type MemoryStore struct {
	records map[string]record
	mu      sync.Mutex
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]record)}
}

// Put overwrites the refresh token record for subject.
func (s *MemoryStore) Put(ctx context.Context, subject, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[subject] = record{token: token, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get returns the authoritative refresh token for subject.
func (s *MemoryStore) Get(ctx context.Context, subject string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.current(subject)
	if err != nil {
		return "", err
	}
	return rec.token, nil
}

// Replace swaps the stored token for next if and only if it currently equals
// presented. The comparison and the write share one critical section.
func (s *MemoryStore) Replace(ctx context.Context, subject, presented, next string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.current(subject)
	if err != nil {
		return err
	}
	if rec.token != presented {
		return core.ErrSessionMismatch
	}

	s.records[subject] = record{token: next, expiresAt: time.Now().Add(ttl)}
	return nil
}

// current must be called with the lock held.
func (s *MemoryStore) current(subject string) (record, error) {
	rec, ok := s.records[subject]
	if !ok {
		return record{}, core.ErrNoSession
	}
	if time.Now().After(rec.expiresAt) {
		delete(s.records, subject)
		return record{}, core.ErrNoSession
	}
	return rec, nil
}

var _ ports.SessionStore = (*MemoryStore)(nil)
