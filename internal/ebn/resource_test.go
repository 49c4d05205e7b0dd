package ebn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResource_ReduceActivationLevel(t *testing.T) {
	r := NewResource("legs", 1)
	r.SetActivation(1.0)

	r.ReduceActivationLevel(0.6)
	assert.InDelta(t, 0.4, r.Activation(), 1e-9)

	r.SetActivation(1.0)
	r.ReduceActivationLevel(1.6)
	assert.Equal(t, MinActivation, r.Activation())
}

func TestResource_IsActivityLowerThanThreshold(t *testing.T) {
	r := NewResource("head", 1)
	r.SetActivation(0.5)

	assert.True(t, r.IsActivityLowerThanThreshold(0.4))
	assert.False(t, r.IsActivityLowerThanThreshold(0.5))
	assert.True(t, r.requested)
}

func TestResource_RoundBookkeeping(t *testing.T) {
	r := NewResource("arms", 2)
	r.setInitialActivation(0.8)

	r.claim(2)
	assert.Equal(t, 0, r.Available())

	// claimed resources are not relaxed and get their level back next round
	r.IsActivityLowerThanThreshold(1)
	r.relax(0.1)
	assert.InDelta(t, 0.8, r.Activation(), 1e-9)
	r.reset()
	assert.Equal(t, 2, r.Available())

	// asked for but not claimed: relaxed once
	r.IsActivityLowerThanThreshold(0.1)
	r.relax(0.1)
	assert.InDelta(t, 0.7, r.Activation(), 1e-9)
	r.relax(0.1)
	assert.InDelta(t, 0.7, r.Activation(), 1e-9)
}

func TestResourceProposition_MatchesIgnoringCase(t *testing.T) {
	assert.True(t, ResourceProposition{Name: "LEGS", Amount: 1}.matches(NewResource("legs", 1)))
}
