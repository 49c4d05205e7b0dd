package ebn

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const defaultInboxSize = 64

// Network is an extended behavior network. It owns every node and runs one
// decision cycle per Decide call. A Network is not safe for concurrent use;
// only Post may be called from other goroutines.
type Network struct {
	name   string
	params Params
	logger *zap.Logger

	perceptions []*Perception
	goals       []*Goal
	resources   []*Resource
	competences []*Competence
	behaviors   map[string]Action

	threshold float64
	tick      uint64
	report    TickReport

	inbox       chan Message
	subscribers []*Subscription
}

// Option configures a Network.
type Option func(*Network)

func WithLogger(l *zap.Logger) Option {
	return func(n *Network) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithBehaviors registers the actions competences can be built from.
func WithBehaviors(b map[string]Action) Option {
	return func(n *Network) {
		for name, a := range b {
			n.behaviors[name] = a
		}
	}
}

// WithInboxSize sets the number of messages Post can queue between ticks.
func WithInboxSize(size int) Option {
	return func(n *Network) {
		if size > 0 {
			n.inbox = make(chan Message, size)
		}
	}
}

func New(name string, params Params, opts ...Option) (*Network, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	n := &Network{
		name:      name,
		params:    params,
		logger:    zap.NewNop(),
		behaviors: make(map[string]Action),
		threshold: params.Theta,
		inbox:     make(chan Message, defaultInboxSize),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = n.logger.With(zap.String("network", name))
	return n, nil
}

func (n *Network) Name() string { return n.name }

func (n *Network) Params() Params { return n.params }

// Threshold is the activation a competence needs to be considered for
// execution in the next attempt.
func (n *Network) Threshold() float64 { return n.threshold }

func (n *Network) Tick() uint64 { return n.tick }

func (n *Network) Perceptions() []*Perception { return append([]*Perception(nil), n.perceptions...) }

func (n *Network) Goals() []*Goal { return append([]*Goal(nil), n.goals...) }

func (n *Network) Resources() []*Resource { return append([]*Resource(nil), n.resources...) }

func (n *Network) Competences() []*Competence { return append([]*Competence(nil), n.competences...) }

// Behavior looks up a registered action by name.
func (n *Network) Behavior(name string) (Action, error) {
	a, ok := n.behaviors[name]
	if !ok {
		return nil, fmt.Errorf("%w: behavior not existing: %s", ErrNetworkConfiguration, name)
	}
	return a, nil
}

func (n *Network) Perception(name string) *Perception {
	for _, p := range n.perceptions {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (n *Network) Goal(name string) *Goal {
	for _, g := range n.goals {
		if g.name == name {
			return g
		}
	}
	return nil
}

func (n *Network) Resource(name string) *Resource {
	for _, r := range n.resources {
		if strings.EqualFold(r.name, name) {
			return r
		}
	}
	return nil
}

func (n *Network) Competence(name string) *Competence {
	for _, c := range n.competences {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *Network) AddPerception(p *Perception) error {
	if n.Perception(p.name) != nil {
		return fmt.Errorf("%w: duplicate perception: %s", ErrNetworkConfiguration, p.name)
	}
	n.perceptions = append(n.perceptions, p)
	n.structureChanged(p.name)
	return nil
}

// AddGoal assigns the goal its index. Goals have to be added before the
// first competence because every competence sizes its goal tracking when
// it is wired.
func (n *Network) AddGoal(g *Goal) error {
	if len(n.competences) > 0 {
		return fmt.Errorf("%w: goal %s added after competences", ErrNetworkConfiguration, g.name)
	}
	if n.Goal(g.name) != nil {
		return fmt.Errorf("%w: duplicate goal: %s", ErrNetworkConfiguration, g.name)
	}
	if err := n.checkPropositions("goal "+g.name, g.condition); err != nil {
		return err
	}
	if err := n.checkPropositions("goal "+g.name, g.relevance.propositions...); err != nil {
		return err
	}
	g.index = len(n.goals)
	n.goals = append(n.goals, g)
	n.structureChanged(g.name)
	return nil
}

// AddResource starts the resource at the threshold theta.
func (n *Network) AddResource(r *Resource) error {
	if n.Resource(r.name) != nil {
		return fmt.Errorf("%w: duplicate resource: %s", ErrNetworkConfiguration, r.name)
	}
	r.setInitialActivation(n.params.Theta)
	n.resources = append(n.resources, r)
	n.structureChanged(r.name)
	return nil
}

// AddCompetence wires the competence to all goals, resources and
// competences already in the network and then adds it.
func (n *Network) AddCompetence(c *Competence) error {
	if n.Competence(c.name) != nil {
		return fmt.Errorf("%w: duplicate competence: %s", ErrNetworkConfiguration, c.name)
	}
	if err := n.checkCompetence(c); err != nil {
		return err
	}
	c.id = len(n.competences)
	c.resetLinks(len(n.goals), n.params)
	if err := c.Connect(n.competences, n.goals, n.resources); err != nil {
		c.id = -1
		return err
	}
	n.competences = append(n.competences, c)
	n.structureChanged(c.name)
	return nil
}

func (n *Network) checkCompetence(c *Competence) error {
	what := "competence " + c.name
	if err := n.checkPropositions(what, c.precondition.propositions...); err != nil {
		return err
	}
	for _, e := range c.effects {
		if err := n.checkPropositions(what, e.Proposition); err != nil {
			return err
		}
		if e.Influence != nil && !n.hasPerception(e.Influence) {
			return fmt.Errorf("%w: %s: perception not existing: %s", ErrNetworkConfiguration, what, e.Influence.name)
		}
	}
	for _, rp := range c.resources {
		if n.Resource(rp.Name) == nil {
			return fmt.Errorf("%w: %s: resource not existing: %s", ErrNetworkConfiguration, what, rp.Name)
		}
	}
	return nil
}

func (n *Network) checkPropositions(what string, props ...Proposition) error {
	for _, p := range props {
		if p.Perception == nil {
			return fmt.Errorf("%w: %s: proposition without perception", ErrNetworkConfiguration, what)
		}
		if !n.hasPerception(p.Perception) {
			return fmt.Errorf("%w: %s: perception not existing: %s", ErrNetworkConfiguration, what, p.Name())
		}
	}
	return nil
}

func (n *Network) hasPerception(p *Perception) bool {
	for _, q := range n.perceptions {
		if q == p {
			return true
		}
	}
	return false
}

// RemoveCompetence drops a competence and rewires the rest.
func (n *Network) RemoveCompetence(name string) error {
	for i, c := range n.competences {
		if c.name != name {
			continue
		}
		n.competences = append(n.competences[:i], n.competences[i+1:]...)
		c.id = -1
		n.rewire()
		n.structureChanged(name)
		return nil
	}
	return fmt.Errorf("%w: competence not existing: %s", ErrNetworkConfiguration, name)
}

// RemoveGoal drops a goal, re-indexes the remaining goals and rewires.
func (n *Network) RemoveGoal(name string) error {
	for i, g := range n.goals {
		if g.name != name {
			continue
		}
		n.goals = append(n.goals[:i], n.goals[i+1:]...)
		g.index = -1
		for j, other := range n.goals {
			other.index = j
		}
		n.rewire()
		n.structureChanged(name)
		return nil
	}
	return fmt.Errorf("%w: goal not existing: %s", ErrNetworkConfiguration, name)
}

// RemoveResource fails while a competence still needs the resource.
func (n *Network) RemoveResource(name string) error {
	idx := -1
	for i, r := range n.resources {
		if strings.EqualFold(r.name, name) {
			idx = i
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: resource not existing: %s", ErrNetworkConfiguration, name)
	}
	for _, c := range n.competences {
		for _, rp := range c.resources {
			if rp.matches(n.resources[idx]) {
				return fmt.Errorf("%w: resource %s in use by competence %s", ErrNetworkConfiguration, name, c.name)
			}
		}
	}
	n.resources = append(n.resources[:idx], n.resources[idx+1:]...)
	n.rewire()
	n.structureChanged(name)
	return nil
}

// RemovePerception fails while a goal or competence still reads it.
func (n *Network) RemovePerception(name string) error {
	p := n.Perception(name)
	if p == nil {
		return fmt.Errorf("%w: perception not existing: %s", ErrNetworkConfiguration, name)
	}
	for _, g := range n.goals {
		if g.condition.Perception == p || conditionReads(g.relevance, p) {
			return fmt.Errorf("%w: perception %s in use by goal %s", ErrNetworkConfiguration, name, g.name)
		}
	}
	for _, c := range n.competences {
		if conditionReads(c.precondition, p) {
			return fmt.Errorf("%w: perception %s in use by competence %s", ErrNetworkConfiguration, name, c.name)
		}
		for _, e := range c.effects {
			if e.Perception == p || e.Influence == p {
				return fmt.Errorf("%w: perception %s in use by competence %s", ErrNetworkConfiguration, name, c.name)
			}
		}
	}
	for i, q := range n.perceptions {
		if q == p {
			n.perceptions = append(n.perceptions[:i], n.perceptions[i+1:]...)
			break
		}
	}
	n.structureChanged(name)
	return nil
}

func conditionReads(c Condition, p *Perception) bool {
	for _, prop := range c.propositions {
		if prop.Perception == p {
			return true
		}
	}
	return false
}

// rewire rebuilds every link in insertion order. Accumulated activation is
// kept; goal tracking restarts because goal slots may have moved.
func (n *Network) rewire() {
	for i, c := range n.competences {
		c.id = i
		c.resetLinks(len(n.goals), n.params)
	}
	for i, c := range n.competences {
		// resources were checked when the competence was added and
		// RemoveResource refuses to drop one in use
		if err := c.Connect(n.competences[:i], n.goals, n.resources); err != nil {
			n.logger.Error("rewire failed", zap.String("competence", c.name), zap.Error(err))
		}
	}
}
