package users

import (
	"context"
	"sync"
)

// MemoryStore is a simple in-memory user store useful for tests and
// local development. Not intended for production.
type MemoryStore struct {
	mu    sync.RWMutex
	byUID map[string]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byUID: make(map[string]User)}
}

func (s *MemoryStore) Insert(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUID[u.UID] = u
	return nil
}

func (s *MemoryStore) GetByUID(_ context.Context, uid string) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byUID[uid]
	return u, ok, nil
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byUID {
		if u.Email == email {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (s *MemoryStore) List(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.byUID))
	for _, u := range s.byUID {
		out = append(out, u)
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUID[u.UID]; !ok {
		return ErrNotFound
	}
	s.byUID[u.UID] = u
	return nil
}
