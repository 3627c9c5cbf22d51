package bookmark

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"
)

// MemoryStore keeps bookmarks in-process, mirroring the GORM store's
// semantics: per-user URL uniqueness, assigned ids, managed timestamps,
// and order-ascending listing.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    uint64
	bookmarks map[uint64]*Bookmark
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookmarks: make(map[uint64]*Bookmark)}
}

func (s *MemoryStore) Insert(_ context.Context, b *Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cur := range s.bookmarks {
		if cur.UserID == b.UserID && cur.URL == b.URL {
			return ErrDuplicate
		}
	}

	s.nextID++
	b.ID = s.nextID
	if b.Tags == nil {
		b.Tags = pq.StringArray{}
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	cp := *b
	s.bookmarks[b.ID] = &cp
	return nil
}

func (s *MemoryStore) List(_ context.Context, userID uint64, tag string) ([]Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Bookmark
	for _, b := range s.bookmarks {
		if b.UserID != userID {
			continue
		}
		if tag != "" && !hasTag(b.Tags, tag) {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, userID, id uint64) (*Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookmarks[id]
	if !ok || b.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *MemoryStore) ExistsURL(_ context.Context, userID uint64, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookmarks {
		if b.UserID == userID && b.URL == url {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) MaxOrder(_ context.Context, userID uint64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	max := -1
	for _, b := range s.bookmarks {
		if b.UserID == userID && b.Order > max {
			max = b.Order
		}
	}
	return max, nil
}

func (s *MemoryStore) Update(_ context.Context, userID, id uint64, tags *[]string, order *int) (*Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookmarks[id]
	if !ok || b.UserID != userID {
		return nil, ErrNotFound
	}
	if tags != nil {
		b.Tags = pq.StringArray(*tags)
	}
	if order != nil {
		b.Order = *order
	}
	b.UpdatedAt = time.Now()

	cp := *b
	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookmarks[id]
	if !ok || b.UserID != userID {
		return ErrNotFound
	}
	delete(s.bookmarks, id)
	return nil
}

func (s *MemoryStore) SetOrder(_ context.Context, userID, id uint64, order int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookmarks[id]
	if !ok || b.UserID != userID {
		return false, nil
	}
	b.Order = order
	b.UpdatedAt = time.Now()
	return true, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
