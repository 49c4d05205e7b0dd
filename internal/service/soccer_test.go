package service

import (
	"context"
	"testing"

	"github.com/Harshitk-cp/behavenet/internal/ebn"
	"github.com/Harshitk-cp/behavenet/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSoccerNetwork_Structure(t *testing.T) {
	board := NewBeliefBoard()
	net, actions, err := NewSoccerNetwork("striker", ebn.DefaultParams(), board, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "striker", net.Name())
	assert.Len(t, net.Perceptions(), 5)
	assert.Len(t, net.Goals(), 2)
	assert.Len(t, net.Resources(), 2)
	assert.Len(t, net.Competences(), 5)
	assert.Len(t, actions, 5)

	s, err := board.Get(Standing)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.TruthValue)

	kick := net.Competence("kick")
	require.NotNil(t, kick)
	assert.Len(t, kick.GoalLinks(), 1)
	assert.Len(t, kick.ResourceLinks(), 1)
	assert.NotEmpty(t, net.Competence("go_to_ball").CompetenceLinks())
}

func TestSoccerNetwork_KickResetsBoard(t *testing.T) {
	board := NewBeliefBoard()
	_, actions, err := NewSoccerNetwork("striker", ebn.DefaultParams(), board, zap.NewNop())
	require.NoError(t, err)

	_, err = board.Set(NearBall, 1)
	require.NoError(t, err)
	require.NoError(t, actions["kick"].Perform())

	s, err := board.Get(NearBall)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.TruthValue)

	require.NoError(t, actions["go_to_ball"].Perform())
	s, err = board.Get(NearBall)
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.TruthValue)
}

func TestSoccerNetwork_RunsUnattended(t *testing.T) {
	board := NewBeliefBoard()
	net, actions, err := NewSoccerNetwork("striker", ebn.DefaultParams(), board, zap.NewNop())
	require.NoError(t, err)
	rt := NewRuntime(net, store.NewMemoryTickStore(100), zap.NewNop())

	performed := func() int64 {
		total := int64(0)
		for _, a := range actions {
			total += a.Calls()
		}
		return total
	}
	for i := 0; i < 50 && performed() == 0; i++ {
		rt.Step(context.Background())
	}
	assert.Positive(t, performed())
}
