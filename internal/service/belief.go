package service

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Harshitk-cp/behavenet/internal/domain"
	"github.com/Harshitk-cp/behavenet/internal/ebn"
)

var ErrUnknownBelief = errors.New("belief not declared")

// BeliefBoard is the world model the network perceives. Sensors and API
// clients write to it from any goroutine; perceptions read it during a
// tick.
type BeliefBoard struct {
	mu      sync.RWMutex
	beliefs map[string]*domain.BeliefState
	now     func() time.Time
}

func NewBeliefBoard() *BeliefBoard {
	return &BeliefBoard{beliefs: make(map[string]*domain.BeliefState), now: time.Now}
}

// Declare adds a belief with its initial truth value. Declaring an existing
// belief resets it.
func (b *BeliefBoard) Declare(name string, truth float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.beliefs[name] = &domain.BeliefState{Name: name, TruthValue: clamp(truth), UpdatedAt: b.now()}
}

// Set updates a declared belief, clamping truth to [0,1].
func (b *BeliefBoard) Set(name string, truth float64) (domain.BeliefState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.beliefs[name]
	if !ok {
		return domain.BeliefState{}, ErrUnknownBelief
	}
	s.TruthValue = clamp(truth)
	s.UpdatedAt = b.now()
	return *s, nil
}

func (b *BeliefBoard) Get(name string) (domain.BeliefState, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.beliefs[name]
	if !ok {
		return domain.BeliefState{}, ErrUnknownBelief
	}
	return *s, nil
}

// All returns every belief sorted by name.
func (b *BeliefBoard) All() []domain.BeliefState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.BeliefState, 0, len(b.beliefs))
	for _, s := range b.beliefs {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Belief returns a live view of a declared belief for use in a perception.
func (b *BeliefBoard) Belief(name string) (ebn.Belief, error) {
	if _, err := b.Get(name); err != nil {
		return nil, err
	}
	return ebn.BeliefFunc(name, func() float64 {
		s, err := b.Get(name)
		if err != nil {
			return 0
		}
		return s.TruthValue
	}), nil
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
