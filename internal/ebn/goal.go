package ebn

// Goal is a desired state of the world. Its activation, importance scaled
// by situational relevance, drives the competences whose effects touch the
// goal condition.
type Goal struct {
	name       string
	index      int
	importance float64
	condition  Proposition
	relevance  Condition
}

// NewGoal creates a goal with importance 1 and no relevance condition.
func NewGoal(name string, condition Proposition) *Goal {
	return &Goal{name: name, index: -1, importance: 1.0, condition: condition}
}

func (g *Goal) Name() string { return g.name }

// Index is the goal's slot in every per-goal activation array. It is -1
// until the goal is added to a network.
func (g *Goal) Index() int { return g.index }

func (g *Goal) Importance() float64 { return g.importance }

// SetImportance clamps to [0,1].
func (g *Goal) SetImportance(v float64) { g.importance = clamp01(v) }

func (g *Goal) Condition() Proposition { return g.condition }

// SetRelevance replaces the relevance condition. An empty condition makes
// the goal always relevant.
func (g *Goal) SetRelevance(c Condition) { g.relevance = c }

func (g *Goal) RelevanceCondition() Condition { return g.relevance }

func (g *Goal) Relevance() float64 {
	return g.relevance.TruthValue()
}

// Activation is what goal links read as the source goal activation.
func (g *Goal) Activation() float64 {
	return g.importance * g.Relevance()
}
