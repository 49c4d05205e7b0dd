package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// TickRecord is the persisted outcome of one decision cycle.
type TickRecord struct {
	ID          uuid.UUID          `json:"id"`
	RunID       uuid.UUID          `json:"run_id"`
	Network     string             `json:"network"`
	Tick        int64              `json:"tick"`
	Attempts    int                `json:"attempts"`
	Threshold   float64            `json:"threshold"`
	Executed    []string           `json:"executed"`
	Failures    map[string]string  `json:"failures,omitempty"`
	Activations map[string]float64 `json:"activations"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Idle reports whether no competence executed in the tick.
func (r TickRecord) Idle() bool {
	return len(r.Executed) == 0
}

// Leader returns the competence with the highest activation. Ties go to
// the alphabetically first name.
func (r TickRecord) Leader() (string, float64) {
	names := make([]string, 0, len(r.Activations))
	for name := range r.Activations {
		names = append(names, name)
	}
	sort.Strings(names)

	leader, best := "", 0.0
	for _, name := range names {
		if a := r.Activations[name]; leader == "" || a > best {
			leader, best = name, a
		}
	}
	return leader, best
}

// BeliefState is the served view of one world-model belief.
type BeliefState struct {
	Name       string    `json:"name"`
	TruthValue float64   `json:"truth_value"`
	UpdatedAt  time.Time `json:"updated_at"`
}
