package ebn

import (
	"fmt"
	"math"
)

// Action is a behavior the execution layer runs when a competence fires.
type Action interface {
	Name() string
	Perform() error
}

// Competence is a behavior rule: preconditions, actions and the effects the
// actions are expected to have. Its executability is the truth of the
// precondition; its activation measures how much the goals want it to run.
type Competence struct {
	name string
	id   int

	precondition Condition
	effects      []Effect
	actions      []Action
	resources    []ResourceProposition

	goalLinks       []Link
	competenceLinks []Link
	resourceLinks   []Link

	tracking *goalTrack

	activation       float64
	pending          float64
	activationChange float64
	executability    float64
	executed         bool
}

func NewCompetence(name string) *Competence {
	return &Competence{name: name, id: -1, tracking: newGoalTrack(0, true)}
}

func (c *Competence) Name() string { return c.name }

// ID is the competence's handle in its network, -1 before it is added.
func (c *Competence) ID() int { return c.id }

func (c *Competence) AddPrecondition(p Proposition) { c.precondition.Add(p) }

func (c *Competence) AddEffect(e Effect) { c.effects = append(c.effects, e) }

func (c *Competence) AddAction(a Action) { c.actions = append(c.actions, a) }

func (c *Competence) AddResource(rp ResourceProposition) {
	c.resources = append(c.resources, rp)
}

func (c *Competence) Precondition() Condition { return c.precondition }

func (c *Competence) Effects() []Effect { return c.effects }

func (c *Competence) Actions() []Action { return c.actions }

func (c *Competence) Resources() []ResourceProposition { return c.resources }

func (c *Competence) GoalLinks() []Link { return c.goalLinks }

func (c *Competence) CompetenceLinks() []Link { return c.competenceLinks }

func (c *Competence) ResourceLinks() []Link { return c.resourceLinks }

func (c *Competence) Activation() float64 { return c.activation }

// ActivationChange is the difference the last commit made.
func (c *Competence) ActivationChange() float64 { return c.activationChange }

func (c *Competence) Executability() float64 { return c.executability }

// Utility combines executability and activation; it is what a competence
// offers when claiming resources.
func (c *Competence) Utility() float64 { return c.executability * c.activation }

func (c *Competence) Executed() bool { return c.executed }

// GoalActivation is the committed activation tracked for one goal.
func (c *Competence) GoalActivation(goalIndex int) float64 {
	return c.tracking.activation(goalIndex)
}

// resetLinks drops all wiring and resizes goal tracking.
func (c *Competence) resetLinks(goals int, p Params) {
	c.goalLinks = nil
	c.competenceLinks = nil
	c.resourceLinks = nil
	c.tracking = newGoalTrack(goals, p.GoalTracking)
}

// Connect wires c into the network formed by the given nodes. c must carry
// its handle already and must not be part of competences. Links are added
// in both directions: into c from goals, resources and the other
// competences' preconditions, and into the others from c's preconditions.
func (c *Competence) Connect(competences []*Competence, goals []*Goal, resources []*Resource) error {
	rlinks := make([]Link, 0, len(c.resources))
	for i, rp := range c.resources {
		ri := findResource(rp, resources)
		if ri < 0 {
			return fmt.Errorf("%w: competence %s: resource not existing: %s", ErrNetworkConfiguration, c.name, rp.Name)
		}
		rlinks = append(rlinks, Link{Kind: ResourceLink, Source: NodeRef{ResourceNode, ri}, Destination: c.id, DestProp: i})
	}

	for _, other := range competences {
		c.connectCompetence(other)
	}
	c.connectGoals(goals)
	c.resourceLinks = append(c.resourceLinks, rlinks...)
	return nil
}

func findResource(rp ResourceProposition, resources []*Resource) int {
	for i, r := range resources {
		if rp.matches(r) {
			return i
		}
	}
	return -1
}

func (c *Competence) connectCompetence(other *Competence) {
	// our preconditions against their effects
	for pi, pre := range c.precondition.propositions {
		for ei, eff := range other.effects {
			switch {
			case eff.Identical(pre):
				other.addCompetenceLink(SuccessorLink, c.id, pi, ei)
			case eff.Inverse(pre):
				other.addCompetenceLink(ConflictorLink, c.id, pi, ei)
			}
		}
	}

	// our effects against their preconditions
	for ei, eff := range c.effects {
		for pi, pre := range other.precondition.propositions {
			switch {
			case pre.Identical(eff.Proposition):
				c.addCompetenceLink(SuccessorLink, other.id, pi, ei)
			case pre.Inverse(eff.Proposition):
				c.addCompetenceLink(ConflictorLink, other.id, pi, ei)
			}
		}
	}
}

func (c *Competence) connectGoals(goals []*Goal) {
	for gi, g := range goals {
		for ei, eff := range c.effects {
			switch {
			case g.condition.Identical(eff.Proposition):
				c.goalLinks = append(c.goalLinks, Link{Kind: GoalLink, Source: NodeRef{GoalNode, gi}, Destination: c.id, DestProp: ei})
			case g.condition.Inverse(eff.Proposition):
				c.goalLinks = append(c.goalLinks, Link{Kind: ProtectedGoalLink, Source: NodeRef{GoalNode, gi}, Destination: c.id, DestProp: ei})
			}
		}
	}
}

func (c *Competence) addCompetenceLink(kind LinkKind, source, sourceProp, destProp int) {
	c.competenceLinks = append(c.competenceLinks, Link{
		Kind:        kind,
		Source:      NodeRef{CompetenceNode, source},
		Destination: c.id,
		SourceProp:  sourceProp,
		DestProp:    destProp,
	})
}

// CalculateExecutability evaluates the precondition.
func (c *Competence) CalculateExecutability() float64 {
	c.executability = c.precondition.TruthValue()
	return c.executability
}

// CalculateExternActivation stages the activation the goals pass in. Links
// into the same goal slot combine by maximum under goal tracking.
func (c *Competence) CalculateExternActivation(n *Network) {
	for _, l := range c.goalLinks {
		c.tracking.stage(l.GoalIndex(), l.Activation(n))
	}
}

// CalculateSpreadingActivation stages the activation other competences
// pass in, adding the strongest (or, without goal tracking, the summed)
// contribution per goal to what the goals staged.
func (c *Competence) CalculateSpreadingActivation(n *Network) {
	if len(c.competenceLinks) == 0 {
		return
	}
	for i := 0; i < c.tracking.goals(); i++ {
		combined := 0.0
		if c.tracking.max {
			combined = math.Inf(-1)
		}
		for _, l := range c.competenceLinks {
			a := l.GoalActivation(n, i)
			if c.tracking.max {
				combined = math.Max(combined, a)
			} else {
				combined += a
			}
		}
		c.tracking.add(i, combined)
	}
}

// CalculateActivation computes the next activation, the decayed previous
// activation plus the fresh per-goal contributions. Nothing becomes visible
// to other competences before SetToNewActivation.
func (c *Competence) CalculateActivation(n *Network) float64 {
	c.tracking.reset()
	c.CalculateExternActivation(n)
	c.CalculateSpreadingActivation(n)
	c.pending = n.params.Beta*c.activation + c.tracking.stagedSum()
	return c.pending
}

// SetToNewActivation commits the staged per-goal values and the activation
// computed last.
func (c *Competence) SetToNewActivation() {
	c.activationChange = c.pending - c.activation
	c.activation = c.pending
	c.tracking.commit()
}

// TransferredActivation is what c forwards to its neighbours for one goal,
// optionally passed through the sigmoid transfer function.
func (c *Competence) TransferredActivation(p Params, goalIndex int) float64 {
	a := c.tracking.activation(goalIndex)
	if !p.TransferFunction {
		return a
	}
	return 1.0 / (1.0 + math.Exp(p.Gain*(p.Sigma-a)))
}

// claimable checks every resource gate. It marks the resources it asked.
func (c *Competence) claimable(n *Network) bool {
	utility := c.Utility()
	for _, l := range c.resourceLinks {
		r := n.resources[l.Source.Index]
		if r.IsActivityLowerThanThreshold(utility) {
			return false
		}
		if c.resources[l.DestProp].Amount > r.Available() {
			return false
		}
	}
	return true
}

// Perform runs every action in order if all resource gates pass, then
// claims the resources. An action error stops the remaining actions and
// leaves the competence not executed.
func (c *Competence) Perform(n *Network) error {
	c.executed = false
	if !c.claimable(n) {
		return nil
	}
	for _, a := range c.actions {
		if err := a.Perform(); err != nil {
			return fmt.Errorf("competence %s: action %s: %w", c.name, a.Name(), err)
		}
	}
	c.executed = true
	for _, l := range c.resourceLinks {
		n.resources[l.Source.Index].claim(c.resources[l.DestProp].Amount)
	}
	return nil
}
