package ebn

import "strings"

// Resource is a capacity-limited shared node. Capacity is the hard per-tick
// gate; activation is the contention level a competence's utility has to
// reach before it may claim the resource.
type Resource struct {
	name     string
	capacity int

	activation        float64
	initialActivation float64
	used              int
	requested         bool
}

func NewResource(name string, capacity int) *Resource {
	if capacity < 0 {
		capacity = 0
	}
	return &Resource{name: name, capacity: capacity, activation: 1.0, initialActivation: 1.0}
}

func (r *Resource) Name() string { return r.name }

func (r *Resource) Capacity() int { return r.capacity }

func (r *Resource) Activation() float64 { return r.activation }

// SetActivation overrides the contention level, floored at MinActivation.
func (r *Resource) SetActivation(v float64) {
	if v < MinActivation {
		v = MinActivation
	}
	r.activation = v
}

func (r *Resource) setInitialActivation(v float64) {
	r.SetActivation(v)
	r.initialActivation = r.activation
}

// ReduceActivationLevel lowers the contention level, never below
// MinActivation.
func (r *Resource) ReduceActivationLevel(x float64) {
	r.SetActivation(r.activation - x)
}

// IsActivityLowerThanThreshold reports whether activity is too low to claim
// the resource and records that the resource was asked for this round.
func (r *Resource) IsActivityLowerThanThreshold(activity float64) bool {
	r.requested = true
	return activity < r.activation
}

// Available is the capacity not yet claimed this round.
func (r *Resource) Available() int { return r.capacity - r.used }

func (r *Resource) Used() int { return r.used }

func (r *Resource) claim(amount int) { r.used += amount }

// reset starts a new admission round. A resource that was claimed in the
// previous round gets its initial contention level back.
func (r *Resource) reset() {
	if r.used > 0 {
		r.activation = r.initialActivation
		r.used = 0
	}
}

// relax decays a resource that was asked for but not claimed.
func (r *Resource) relax(x float64) {
	if r.requested && r.used == 0 {
		r.ReduceActivationLevel(x)
	}
	r.requested = false
}

// ResourceProposition declares how much of a named resource a competence
// needs to run.
type ResourceProposition struct {
	Name   string
	Amount int
}

func (rp ResourceProposition) matches(r *Resource) bool {
	return strings.EqualFold(rp.Name, r.name)
}
