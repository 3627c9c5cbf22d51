package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryAccountStore keeps accounts in-process, mirroring the GORM store's
// semantics (unique email, assigned ids, managed timestamps).
type MemoryAccountStore struct {
	mu     sync.RWMutex
	nextID uint64
	users  map[string]*User // key: email
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{users: make(map[string]*User)}
}

func (s *MemoryAccountStore) Insert(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.Email]; exists {
		return ErrEmailTaken
	}
	s.nextID++
	u.ID = s.nextID
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func (s *MemoryAccountStore) ByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}
