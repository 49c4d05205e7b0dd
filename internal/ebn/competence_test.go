package ebn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleGoalNetwork has one goal over p1 and the given unit parameters.
func singleGoalNetwork(t *testing.T, p1 *Perception, importance float64) *Network {
	t.Helper()
	params := testParams()
	params.Gamma = 1
	params.Delta = 1
	n, err := New("unit", params)
	require.NoError(t, err)
	require.NoError(t, n.AddPerception(p1))
	g := NewGoal("g1", NewProposition(p1, false))
	g.SetImportance(importance)
	require.NoError(t, n.AddGoal(g))
	return n
}

func TestCompetence_Connect(t *testing.T) {
	f := newFixture()
	goals := []*Goal{f.goalTrue1, f.goalNotTrue1}
	f.goalTrue1.index, f.goalNotTrue1.index = 0, 1
	resources := []*Resource{f.resource0, f.resource1, f.resource2}

	f.competence1.id = 0
	f.competence1.resetLinks(len(goals), f.params)
	f.competence2.id = 1
	f.competence2.resetLinks(len(goals), f.params)
	require.NoError(t, f.competence2.Connect([]*Competence{f.competence1}, goals, resources))

	// goal links
	links := f.competence2.GoalLinks()
	require.Len(t, links, 2)
	assert.Equal(t, GoalLink, links[0].Kind)
	assert.Equal(t, NodeRef{GoalNode, 0}, links[0].Source)
	assert.Equal(t, ProtectedGoalLink, links[1].Kind)
	assert.Equal(t, NodeRef{GoalNode, 1}, links[1].Source)

	// competence links
	links = f.competence2.CompetenceLinks()
	require.Len(t, links, 2)
	assert.Equal(t, SuccessorLink, links[0].Kind)
	assert.Equal(t, NodeRef{CompetenceNode, 0}, links[0].Source)
	assert.Equal(t, 1, links[0].Destination)
	assert.Equal(t, ConflictorLink, links[1].Kind)
	assert.Equal(t, NodeRef{CompetenceNode, 0}, links[1].Source)

	// links into the competence that was already there
	links = f.competence1.CompetenceLinks()
	require.Len(t, links, 2)
	assert.Equal(t, SuccessorLink, links[0].Kind)
	assert.Equal(t, NodeRef{CompetenceNode, 1}, links[0].Source)
	assert.Equal(t, 0, links[0].Destination)
	assert.Equal(t, ConflictorLink, links[1].Kind)
	assert.Equal(t, NodeRef{CompetenceNode, 1}, links[1].Source)

	// resource links
	links = f.competence2.ResourceLinks()
	require.Len(t, links, 1)
	assert.Equal(t, ResourceLink, links[0].Kind)
	assert.Equal(t, NodeRef{ResourceNode, 1}, links[0].Source)
}

func TestCompetence_ConnectMissingResource(t *testing.T) {
	f := newFixture()
	f.competence2.AddResource(ResourceProposition{Name: "false2", Amount: 1})
	f.competence2.id = 1

	err := f.competence2.Connect([]*Competence{f.competence1}, nil, []*Resource{f.resource0, f.resource1, f.resource2})
	assert.True(t, errors.Is(err, ErrNetworkConfiguration))
	assert.Contains(t, err.Error(), "false2")
	assert.Empty(t, f.competence1.CompetenceLinks())
}

func TestCompetence_CalculateExternActivationOne(t *testing.T) {
	p1 := fixed("p1", 0)
	n := singleGoalNetwork(t, p1, 0.7)
	c := NewCompetence("c")
	c.AddEffect(NewEffect(p1, false, 1.0))
	require.NoError(t, n.AddCompetence(c))

	c.CalculateExternActivation(n)
	c.SetToNewActivation()
	assert.InDelta(t, 0.7, c.GoalActivation(0), 0.001)
}

func TestCompetence_CalculateExternActivationTwoTakesMax(t *testing.T) {
	p1 := fixed("p1", 0)
	n := singleGoalNetwork(t, p1, 1.0)
	c := NewCompetence("c")
	c.AddEffect(NewEffect(p1, false, 0.7))
	c.AddEffect(NewEffect(p1, false, 0.6))
	require.NoError(t, n.AddCompetence(c))
	require.Len(t, c.GoalLinks(), 2)

	c.CalculateExternActivation(n)
	c.SetToNewActivation()
	assert.InDelta(t, 0.7, c.GoalActivation(0), 0.001)
}

func TestCompetence_CalculateExternActivationWithoutGoalTrackingSums(t *testing.T) {
	p1 := fixed("p1", 0)
	params := testParams()
	params.Gamma = 1
	params.GoalTracking = false
	n, err := New("unit", params)
	require.NoError(t, err)
	require.NoError(t, n.AddPerception(p1))
	require.NoError(t, n.AddGoal(NewGoal("g1", NewProposition(p1, false))))
	c := NewCompetence("c")
	c.AddEffect(NewEffect(p1, false, 0.7))
	c.AddEffect(NewEffect(p1, false, 0.6))
	require.NoError(t, n.AddCompetence(c))

	assert.InDelta(t, 1.3, c.CalculateActivation(n), 0.001)
}

func TestCompetence_CalculateSpreadingActivation(t *testing.T) {
	// a needs p2 which b establishes; b gets a's activation per goal
	p1, p2 := fixed("p1", 0), fixed("p2", 0)
	n := singleGoalNetwork(t, p1, 0.5)
	require.NoError(t, n.AddPerception(p2))

	a := NewCompetence("a")
	a.AddPrecondition(NewProposition(p2, false))
	a.AddEffect(NewEffect(p1, false, 1.0))
	b := NewCompetence("b")
	b.AddEffect(NewEffect(p2, false, 1.0))
	require.NoError(t, n.AddCompetence(a))
	require.NoError(t, n.AddCompetence(b))
	require.Len(t, b.CompetenceLinks(), 1)

	n.SpreadActivation()
	assert.InDelta(t, 0.5, a.GoalActivation(0), 1e-9)
	assert.Equal(t, 0.0, b.GoalActivation(0), "spread reads committed values only")

	b.CalculateSpreadingActivation(n)
	b.SetToNewActivation()
	// gamma * 0.5 * (1 - truth(p2)) * 1
	assert.InDelta(t, 0.5, b.GoalActivation(0), 1e-9)
}

func TestCompetence_TransferFunction(t *testing.T) {
	p := testParams()
	c := NewCompetence("c")
	c.tracking = newGoalTrack(1, true)
	c.tracking.current[0] = 0.55

	assert.InDelta(t, 0.55, c.TransferredActivation(p, 0), 1e-9)
	p.TransferFunction = true
	assert.InDelta(t, 0.5, c.TransferredActivation(p, 0), 1e-9)
	c.tracking.current[0] = 1.0
	assert.Greater(t, c.TransferredActivation(p, 0), 0.9)
}

func TestCompetence_CalculateExecutability(t *testing.T) {
	f := newFixture()
	assert.InDelta(t, 1.0, f.empty.CalculateExecutability(), 0.001)
	assert.InDelta(t, 1.0, f.competence1.CalculateExecutability(), 0.001)
}

func TestCompetence_CalculateExecutabilityFuzzy(t *testing.T) {
	c := NewCompetence("testCompetence")
	c.AddPrecondition(NewProposition(fixed("a", 0.6), false))
	c.AddPrecondition(NewProposition(fixed("b", 0.7), false))
	assert.InDelta(t, 0.42, c.CalculateExecutability(), 0.001)
}

func TestCompetence_CalculateActivationEmpty(t *testing.T) {
	f := newFixture()
	n := f.network(t, f.params)
	require.NoError(t, n.AddCompetence(f.empty))
	assert.InDelta(t, 0.0, f.empty.CalculateActivation(n), 0.001)
}

func TestCompetence_CalculateActivation(t *testing.T) {
	p1, p2 := fixed("p1", 0), fixed("p2", 1)
	n := singleGoalNetwork(t, p1, 0.7)
	require.NoError(t, n.AddPerception(p2))
	g2 := NewGoal("g2", NewProposition(p2, true))
	g2.SetImportance(0.3)
	require.NoError(t, n.AddGoal(g2))

	c := NewCompetence("c")
	c.AddEffect(NewEffect(p1, false, 1.0))
	c.AddEffect(NewEffect(p2, false, 1.0))
	require.NoError(t, n.AddCompetence(c))

	assert.InDelta(t, 0.4, c.CalculateActivation(n), 0.00001)
	c.SetToNewActivation()
	assert.InDelta(t, n.Params().Beta*0.4+0.4, c.CalculateActivation(n), 0.00001)
}

func preparePerform(t *testing.T, f *fixture, c *Competence) *Network {
	t.Helper()
	n, err := New("performNet", f.params)
	require.NoError(t, err)
	require.NoError(t, n.AddPerception(f.true1))
	require.NoError(t, n.AddPerception(f.false1))
	require.NoError(t, n.AddGoal(f.goalTrue1))
	require.NoError(t, n.AddGoal(f.goalNotTrue1))
	for _, r := range []*Resource{f.resource0, f.resource1, f.resource2} {
		require.NoError(t, n.AddResource(r))
	}
	require.NoError(t, n.AddCompetence(c))
	c.CalculateExecutability()
	c.CalculateActivation(n)
	c.SetToNewActivation()
	return n
}

func TestCompetence_Perform(t *testing.T) {
	f := newFixture()
	n := preparePerform(t, f, f.competence1)

	require.NoError(t, f.competence1.Perform(n))
	assert.True(t, f.competence1.Executed())
	f.action1.AssertNumberOfCalls(t, "Perform", 1)
}

func TestCompetence_PerformWithActionError(t *testing.T) {
	f := newFixture()
	failing := &mockAction{name: "kick"}
	failing.On("Perform").Return(errors.New("motor stalled"))
	f.competence1.actions = []Action{failing, f.action1}
	n := preparePerform(t, f, f.competence1)

	err := f.competence1.Perform(n)
	assert.ErrorContains(t, err, "motor stalled")
	assert.False(t, f.competence1.Executed())
	failing.AssertNumberOfCalls(t, "Perform", 1)
	f.action1.AssertNotCalled(t, "Perform")
}

func TestCompetence_PerformWithResourceNotEnoughAmount(t *testing.T) {
	f := newFixture()
	f.competence1.AddResource(ResourceProposition{Name: "resource0", Amount: 1})
	n := preparePerform(t, f, f.competence1)
	f.resource0.SetActivation(0.2)

	require.NoError(t, f.competence1.Perform(n))
	assert.False(t, f.competence1.Executed())
	f.action1.AssertNotCalled(t, "Perform")
}

func TestCompetence_PerformWithResource(t *testing.T) {
	f := newFixture()
	f.competence1.AddResource(ResourceProposition{Name: "resource1", Amount: 1})
	n := preparePerform(t, f, f.competence1)
	f.resource1.SetActivation(0.2)

	require.NoError(t, f.competence1.Perform(n))
	assert.True(t, f.competence1.Executed(), "Action was not executed")
	f.action1.AssertNumberOfCalls(t, "Perform", 1)
	assert.Equal(t, 0, f.resource1.Available())
}

func TestCompetence_PerformWithResourceActivationTooHigh(t *testing.T) {
	f := newFixture()
	f.competence1.AddResource(ResourceProposition{Name: "resource2", Amount: 1})
	n := preparePerform(t, f, f.competence1)
	f.resource2.SetActivation(f.competence1.Utility() + 0.1)

	require.NoError(t, f.competence1.Perform(n))
	assert.False(t, f.competence1.Executed())
	assert.True(t, f.resource2.requested)
}
