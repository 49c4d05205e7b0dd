package store

import (
	"context"
	"sync"
	"time"

	"github.com/Harshitk-cp/behavenet/internal/domain"
	"github.com/google/uuid"
)

// MemoryTickStore keeps the most recent ticks in process. It is used when
// no database is configured; the oldest records are overwritten once
// capacity is reached.
type MemoryTickStore struct {
	mu       sync.RWMutex
	records  []domain.TickRecord
	next     int
	full     bool
	now      func() time.Time
	capacity int
}

func NewMemoryTickStore(capacity int) *MemoryTickStore {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryTickStore{
		records:  make([]domain.TickRecord, capacity),
		now:      time.Now,
		capacity: capacity,
	}
}

func (s *MemoryTickStore) Create(ctx context.Context, r *domain.TickRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	for _, existing := range s.ordered() {
		if existing.ID == r.ID || (existing.RunID == r.RunID && existing.Tick == r.Tick) {
			return ErrConflict
		}
	}
	r.CreatedAt = s.now()
	s.records[s.next] = clone(*r)
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.full = true
	}
	return nil
}

func (s *MemoryTickStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TickRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.ordered() {
		if r.ID == id {
			c := clone(r)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryTickStore) ListRecent(ctx context.Context, runID uuid.UUID, limit int) ([]domain.TickRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ordered := s.ordered()
	var out []domain.TickRecord
	for i := len(ordered) - 1; i >= 0 && len(out) < limit; i-- {
		if ordered[i].RunID == runID {
			out = append(out, clone(ordered[i]))
		}
	}
	return out, nil
}

// Len is the number of records held.
func (s *MemoryTickStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.full {
		return s.capacity
	}
	return s.next
}

// ordered returns the held records oldest first. Callers hold the lock.
func (s *MemoryTickStore) ordered() []domain.TickRecord {
	if !s.full {
		return s.records[:s.next]
	}
	out := make([]domain.TickRecord, 0, s.capacity)
	out = append(out, s.records[s.next:]...)
	return append(out, s.records[:s.next]...)
}

func clone(r domain.TickRecord) domain.TickRecord {
	r.Executed = append([]string(nil), r.Executed...)
	if r.Failures != nil {
		f := make(map[string]string, len(r.Failures))
		for k, v := range r.Failures {
			f[k] = v
		}
		r.Failures = f
	}
	if r.Activations != nil {
		a := make(map[string]float64, len(r.Activations))
		for k, v := range r.Activations {
			a[k] = v
		}
		r.Activations = a
	}
	return r
}
