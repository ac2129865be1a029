package planstore

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

// MemoryStore is a bounded LRU cache with TTL expiry. It replaces the
// unbounded module-level plan map of earlier designs: old entries fall out
// instead of growing with process lifetime.
type MemoryStore struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	order   *list.List // front = most recently used
	entries map[string]*list.Element
	now     func() time.Time
}

type memoryEntry struct {
	id      string
	plan    *model.Plan
	expires time.Time
}

// NewMemoryStore creates a cache holding at most maxSize plans for at most
// ttl each. Non-positive maxSize defaults to 256; non-positive ttl disables
// expiry.
func NewMemoryStore(maxSize int, ttl time.Duration) *MemoryStore {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &MemoryStore{
		maxSize: maxSize,
		ttl:     ttl,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		now:     time.Now,
	}
}

// Put stores a copy of the plan, evicting the least recently used entry when
// the cache is full.
func (s *MemoryStore) Put(_ context.Context, p *model.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &memoryEntry{id: p.ID, plan: p.Clone()}
	if s.ttl > 0 {
		entry.expires = s.now().Add(s.ttl)
	}
	if el, ok := s.entries[p.ID]; ok {
		el.Value = entry
		s.order.MoveToFront(el)
		return nil
	}
	s.entries[p.ID] = s.order.PushFront(entry)
	for s.order.Len() > s.maxSize {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.entries, oldest.Value.(*memoryEntry).id)
	}
	return nil
}

// Get returns a copy of the stored plan or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, id string) (*model.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	entry := el.Value.(*memoryEntry)
	if !entry.expires.IsZero() && s.now().After(entry.expires) {
		s.order.Remove(el)
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	s.order.MoveToFront(el)
	return entry.plan.Clone(), nil
}

// Delete removes the plan if present.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[id]
	if !ok {
		return ErrNotFound
	}
	s.order.Remove(el)
	delete(s.entries, id)
	return nil
}

// Len reports the current number of cached plans.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
