package ebn

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAction struct {
	mock.Mock
	name string
}

func newMockAction(name string) *mockAction {
	a := &mockAction{name: name}
	a.On("Perform").Return(nil)
	return a
}

func (a *mockAction) Name() string { return a.name }

func (a *mockAction) Perform() error {
	args := a.Called()
	return args.Error(0)
}

// countingBelief counts reads so tests can check perception caching.
type countingBelief struct {
	name  string
	value float64
	reads int
}

func (b *countingBelief) Name() string { return b.name }

func (b *countingBelief) TruthValue() float64 {
	b.reads++
	return b.value
}

func fixed(name string, v float64) *Perception {
	return NewPerception(BeliefFunc(name, func() float64 { return v }))
}

func testParams() Params {
	return Params{
		Beta:              0.5,
		Gamma:             0.8,
		Delta:             0.7,
		Sigma:             0.55,
		Theta:             0.8,
		ThetaReduction:    0.1,
		Gain:              5.0,
		ExecutionTries:    10,
		GoalTracking:      true,
		ConcurrentActions: true,
	}
}

// fixture mirrors a small robot network: two goals over the same
// perception with opposite polarity, two symmetric competences and three
// resources with capacities 0, 1 and 2.
type fixture struct {
	params Params

	true1, true2, false1, false2 *Perception

	goalTrue1, goalNotTrue1 *Goal

	resource0, resource1, resource2 *Resource

	action1, action2 *mockAction

	empty, competence1, competence2 *Competence
}

func newFixture() *fixture {
	f := &fixture{params: testParams()}

	f.true1 = fixed("true1", 1)
	f.true2 = fixed("true2", 1)
	f.false1 = fixed("false1", 0)
	f.false2 = fixed("false2", 0)

	f.goalTrue1 = NewGoal("goalTrue1", NewProposition(f.true1, false))
	f.goalTrue1.SetImportance(0.8)
	f.goalNotTrue1 = NewGoal("goalNotTrue1", NewProposition(f.true1, true))
	f.goalNotTrue1.SetImportance(0.3)

	f.resource0 = NewResource("resource0", 0)
	f.resource1 = NewResource("resource1", 1)
	f.resource2 = NewResource("resource2", 2)

	f.action1 = newMockAction("action1")
	f.action2 = newMockAction("action2")

	f.empty = NewCompetence("testCompetence")
	f.competence1 = f.symmetricCompetence("competence1", f.action1)
	f.competence2 = f.symmetricCompetence("competence2", f.action2)
	f.competence2.AddResource(ResourceProposition{Name: "resource1", Amount: 1})
	return f
}

func (f *fixture) symmetricCompetence(name string, a Action) *Competence {
	c := NewCompetence(name)
	c.AddPrecondition(NewProposition(f.true1, false))
	c.AddPrecondition(NewProposition(f.false1, true))
	c.AddEffect(NewEffect(f.true1, false, 1.0))
	c.AddEffect(NewEffect(f.false1, false, 1.0))
	c.AddAction(a)
	return c
}

// network builds the network used by the decision tests: both goals, the
// perceptions they read and resource1.
func (f *fixture) network(t *testing.T, params Params) *Network {
	t.Helper()
	n, err := New("fullNet", params)
	require.NoError(t, err)
	require.NoError(t, n.AddPerception(f.true1))
	require.NoError(t, n.AddPerception(f.false1))
	require.NoError(t, n.AddGoal(f.goalTrue1))
	require.NoError(t, n.AddGoal(f.goalNotTrue1))
	require.NoError(t, n.AddResource(f.resource1))
	return n
}
