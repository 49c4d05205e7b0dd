package ebn

import "strings"

// Belief is the world-model's view of one fact. TruthValue is read at most
// once per tick through the Perception wrapping it.
type Belief interface {
	Name() string
	TruthValue() float64
}

// BeliefFunc adapts a function to the Belief interface.
func BeliefFunc(name string, fn func() float64) Belief {
	return funcBelief{name: name, fn: fn}
}

type funcBelief struct {
	name string
	fn   func() float64
}

func (b funcBelief) Name() string        { return b.name }
func (b funcBelief) TruthValue() float64 { return b.fn() }

// Perception caches the truth value of a belief for the duration of a tick.
type Perception struct {
	name     string
	belief   Belief
	value    float64
	outdated bool
}

// NewPerception wraps a belief. The perception is named after the belief.
func NewPerception(b Belief) *Perception {
	return &Perception{name: b.Name(), belief: b, outdated: true}
}

func (p *Perception) Name() string { return p.name }

// TruthValue returns the cached value, reading the belief on the first call
// after an update. Values outside [0,1] are clamped.
func (p *Perception) TruthValue() float64 {
	if p.outdated {
		p.value = clamp01(p.belief.TruthValue())
		p.outdated = false
	}
	return p.value
}

// Outdated reports whether the next TruthValue call reads the belief.
func (p *Perception) Outdated() bool { return p.outdated }

// Update marks the cached value stale.
func (p *Perception) Update() { p.outdated = true }

// Proposition is a possibly negated perception.
type Proposition struct {
	Perception *Perception
	Negated    bool
}

func NewProposition(p *Perception, negated bool) Proposition {
	return Proposition{Perception: p, Negated: negated}
}

func (p Proposition) Name() string { return p.Perception.Name() }

func (p Proposition) TruthValue() float64 {
	if p.Negated {
		return 1.0 - p.Perception.TruthValue()
	}
	return p.Perception.TruthValue()
}

// same reports whether both propositions read the same perception.
func (p Proposition) same(other Proposition) bool {
	return p.Perception == other.Perception
}

// Identical reports same perception and same polarity.
func (p Proposition) Identical(other Proposition) bool {
	return p.same(other) && p.Negated == other.Negated
}

// Inverse reports same perception and opposite polarity.
func (p Proposition) Inverse(other Proposition) bool {
	return p.same(other) && p.Negated != other.Negated
}

func (p Proposition) String() string {
	if p.Negated {
		return "not " + p.Name()
	}
	return p.Name()
}

// Effect is an expected postcondition of a competence.
type Effect struct {
	Proposition
	Probability float64
	// Influence optionally scales the effect by a perception, e.g. how much
	// of a resource the effect produces. Nil means no scaling.
	Influence *Perception
}

func NewEffect(p *Perception, negated bool, probability float64) Effect {
	return Effect{Proposition: NewProposition(p, negated), Probability: probability}
}

// Strength is the factor links apply for this effect.
func (e Effect) Strength() float64 {
	if e.Influence != nil {
		return e.Probability * e.Influence.TruthValue()
	}
	return e.Probability
}

// Condition is a conjunction of propositions evaluated with the product
// t-norm. An empty condition is satisfied.
type Condition struct {
	propositions []Proposition
}

func NewCondition(props ...Proposition) Condition {
	return Condition{propositions: props}
}

func (c *Condition) Add(p Proposition) {
	c.propositions = append(c.propositions, p)
}

func (c Condition) Propositions() []Proposition {
	return c.propositions
}

func (c Condition) Len() int { return len(c.propositions) }

func (c Condition) TruthValue() float64 {
	truth := 1.0
	for _, p := range c.propositions {
		truth *= p.TruthValue()
	}
	return truth
}

func (c Condition) String() string {
	names := make([]string, len(c.propositions))
	for i, p := range c.propositions {
		names[i] = p.String()
	}
	return strings.Join(names, " and ")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
