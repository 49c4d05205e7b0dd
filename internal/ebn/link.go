package ebn

import "fmt"

// LinkKind selects the activation formula of a link.
type LinkKind uint8

const (
	GoalLink LinkKind = iota
	ProtectedGoalLink
	SuccessorLink
	ConflictorLink
	ResourceLink
)

func (k LinkKind) String() string {
	switch k {
	case GoalLink:
		return "goal"
	case ProtectedGoalLink:
		return "protected_goal"
	case SuccessorLink:
		return "successor"
	case ConflictorLink:
		return "conflictor"
	case ResourceLink:
		return "resource"
	}
	return fmt.Sprintf("link(%d)", uint8(k))
}

// NodeKind tells which arena a NodeRef indexes.
type NodeKind uint8

const (
	GoalNode NodeKind = iota
	CompetenceNode
	ResourceNode
)

// NodeRef is a stable handle into one of the network's node slices.
type NodeRef struct {
	Kind  NodeKind
	Index int
}

// Link carries activation into a competence. Nodes are referenced by
// handle so that the cyclic competence graph holds no pointer cycles.
//
// SourceProp indexes the source competence's preconditions for successor
// and conflictor links and is unused otherwise. DestProp indexes the
// destination's effects, or its resource propositions for resource links.
type Link struct {
	Kind        LinkKind
	Source      NodeRef
	Destination int
	SourceProp  int
	DestProp    int
}

// The formulas below are kept free of network lookups so they can be
// checked in isolation.

func goalLinkActivation(p Params, goalActivation, strength float64) float64 {
	return p.Gamma * goalActivation * strength
}

func protectedGoalLinkActivation(p Params, goalActivation, strength float64) float64 {
	return -p.Delta * goalActivation * strength
}

// successorLinkActivation rewards establishing a precondition of the source
// competence that is not yet true.
func successorLinkActivation(p Params, transferred, sourceTruth, strength float64) float64 {
	return p.Gamma * transferred * (1 - sourceTruth) * strength
}

// conflictorLinkActivation penalises undoing a precondition of the source
// competence that is already true.
func conflictorLinkActivation(p Params, transferred, sourceTruth, strength float64) float64 {
	return -p.Delta * transferred * sourceTruth * strength
}

// GoalIndex is the goal slot a goal-level link feeds.
func (l Link) GoalIndex() int {
	return l.Source.Index
}

// Activation is the single value a goal-level link passes, or the claim
// threshold of a resource link. Competence links sum their per-goal values.
func (l Link) Activation(n *Network) float64 {
	switch l.Kind {
	case GoalLink, ProtectedGoalLink:
		return l.GoalActivation(n, l.GoalIndex())
	case ResourceLink:
		// a resource passes its contention level; the competence has to
		// match it with its utility to claim the resource
		return n.resources[l.Source.Index].Activation()
	}
	total := 0.0
	for i := range n.goals {
		total += l.GoalActivation(n, i)
	}
	return total
}

// GoalActivation is the activation this link passes for one goal.
func (l Link) GoalActivation(n *Network, goalIndex int) float64 {
	dest := n.competences[l.Destination]
	switch l.Kind {
	case GoalLink, ProtectedGoalLink:
		if goalIndex != l.GoalIndex() {
			return 0
		}
		g := n.goals[l.Source.Index]
		strength := dest.effects[l.DestProp].Strength()
		if l.Kind == GoalLink {
			return goalLinkActivation(n.params, g.Activation(), strength)
		}
		return protectedGoalLinkActivation(n.params, g.Activation(), strength)
	case SuccessorLink, ConflictorLink:
		src := n.competences[l.Source.Index]
		transferred := src.TransferredActivation(n.params, goalIndex)
		truth := src.precondition.propositions[l.SourceProp].TruthValue()
		strength := dest.effects[l.DestProp].Strength()
		if l.Kind == SuccessorLink {
			return successorLinkActivation(n.params, transferred, truth, strength)
		}
		return conflictorLinkActivation(n.params, transferred, truth, strength)
	}
	return 0
}

func (l Link) String() string {
	return fmt.Sprintf("%s link %d:%d -> competence %d", l.Kind, l.Source.Kind, l.Source.Index, l.Destination)
}
