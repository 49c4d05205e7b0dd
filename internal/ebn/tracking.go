package ebn

// goalTrack keeps per-goal activation. Contributions are staged while a
// spread is computed and become visible only on commit, so the order in
// which competences are evaluated has no influence on the result.
type goalTrack struct {
	// max combines contributions to one goal slot by maximum (goal
	// tracking); otherwise they are summed.
	max     bool
	current []float64
	staged  []float64
	set     []bool
}

func newGoalTrack(goals int, tracking bool) *goalTrack {
	return &goalTrack{
		max:     tracking,
		current: make([]float64, goals),
		staged:  make([]float64, goals),
		set:     make([]bool, goals),
	}
}

func (t *goalTrack) goals() int { return len(t.current) }

func (t *goalTrack) activation(i int) float64 {
	if i < 0 || i >= len(t.current) {
		return 0
	}
	return t.current[i]
}

// stage records one contribution for goal slot i.
func (t *goalTrack) stage(i int, a float64) {
	if i < 0 || i >= len(t.staged) {
		return
	}
	if t.max && t.set[i] && a <= t.staged[i] {
		return
	}
	if t.max || !t.set[i] {
		t.staged[i] = a
	} else {
		t.staged[i] += a
	}
	t.set[i] = true
}

// add combines a contribution from a different source class additively.
func (t *goalTrack) add(i int, a float64) {
	if i < 0 || i >= len(t.staged) {
		return
	}
	t.staged[i] += a
	t.set[i] = true
}

func (t *goalTrack) stagedSum() float64 {
	sum := 0.0
	for _, a := range t.staged {
		sum += a
	}
	return sum
}

func (t *goalTrack) commit() {
	copy(t.current, t.staged)
	t.reset()
}

func (t *goalTrack) reset() {
	for i := range t.staged {
		t.staged[i] = 0
		t.set[i] = false
	}
}
