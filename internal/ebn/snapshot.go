package ebn

// Snapshot is the observable state of a network after a tick.
type Snapshot struct {
	Name        string            `json:"name"`
	Tick        uint64            `json:"tick"`
	Threshold   float64           `json:"threshold"`
	Params      Params            `json:"params"`
	Perceptions []PerceptionState `json:"perceptions"`
	Goals       []GoalState       `json:"goals"`
	Resources   []ResourceState   `json:"resources"`
	Competences []CompetenceState `json:"competences"`
}

type PerceptionState struct {
	Name       string  `json:"name"`
	TruthValue float64 `json:"truth_value"`
}

type GoalState struct {
	Name       string  `json:"name"`
	Index      int     `json:"index"`
	Condition  string  `json:"condition"`
	Importance float64 `json:"importance"`
	Relevance  float64 `json:"relevance"`
	Activation float64 `json:"activation"`
}

type ResourceState struct {
	Name       string  `json:"name"`
	Capacity   int     `json:"capacity"`
	Used       int     `json:"used"`
	Activation float64 `json:"activation"`
}

type CompetenceState struct {
	Name            string    `json:"name"`
	Executability   float64   `json:"executability"`
	Activation      float64   `json:"activation"`
	GoalActivations []float64 `json:"goal_activations"`
	Executed        bool      `json:"executed"`
	Links           int       `json:"links"`
}

// Snapshot copies the current state. Perceptions report the value cached
// during the last tick.
func (n *Network) Snapshot() Snapshot {
	s := Snapshot{
		Name:      n.name,
		Tick:      n.tick,
		Threshold: n.threshold,
		Params:    n.params,
	}
	for _, p := range n.perceptions {
		s.Perceptions = append(s.Perceptions, PerceptionState{Name: p.name, TruthValue: p.value})
	}
	for _, g := range n.goals {
		s.Goals = append(s.Goals, GoalState{
			Name:       g.name,
			Index:      g.index,
			Condition:  g.condition.String(),
			Importance: g.importance,
			Relevance:  g.Relevance(),
			Activation: g.Activation(),
		})
	}
	for _, r := range n.resources {
		s.Resources = append(s.Resources, ResourceState{Name: r.name, Capacity: r.capacity, Used: r.used, Activation: r.activation})
	}
	for _, c := range n.competences {
		s.Competences = append(s.Competences, CompetenceState{
			Name:            c.name,
			Executability:   c.executability,
			Activation:      c.activation,
			GoalActivations: append([]float64(nil), c.tracking.current...),
			Executed:        c.executed,
			Links:           len(c.goalLinks) + len(c.competenceLinks) + len(c.resourceLinks),
		})
	}
	return s
}
