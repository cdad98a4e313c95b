package pending

import (
	"context"
	"log"
	"sync"
	"time"
)

// MemoryStore keeps pending proposals in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Proposal
	ttl     time.Duration
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store whose entries live for ttl after their last update.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{
		entries: make(map[string]Proposal),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(ctx context.Context, p *Proposal) error {
	now := s.now()
	entry := *p
	entry.CreatedAt = now
	entry.ExpiresAt = now.Add(s.ttl)

	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.mu.Unlock()

	p.CreatedAt = entry.CreatedAt
	p.ExpiresAt = entry.ExpiresAt
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.liveLocked(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &entry, nil
}

func (s *MemoryStore) SetFormat(ctx context.Context, id, format string) (*Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.liveLocked(id)
	if !ok {
		return nil, ErrNotFound
	}
	entry.Format = format
	entry.ExpiresAt = s.now().Add(s.ttl)
	s.entries[id] = entry
	return &entry, nil
}

func (s *MemoryStore) Take(ctx context.Context, id string) (*Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.liveLocked(id)
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.entries, id)
	return &entry, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Len reports how many entries are held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Reap drops every entry that expired before now and returns how many were removed.
func (s *MemoryStore) Reap(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run reaps expired entries every interval until ctx is cancelled.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Reap(s.now()); n > 0 {
				log.Printf("pending: reaped %d abandoned proposals", n)
			}
		}
	}
}

// liveLocked returns the entry when present and not expired. Expired entries are
// removed on access. Callers hold s.mu.
func (s *MemoryStore) liveLocked(id string) (Proposal, bool) {
	entry, ok := s.entries[id]
	if !ok {
		return Proposal{}, false
	}
	if !s.now().Before(entry.ExpiresAt) {
		delete(s.entries, id)
		return Proposal{}, false
	}
	return entry, true
}
