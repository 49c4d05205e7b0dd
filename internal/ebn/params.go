package ebn

import "fmt"

// Default network parameters.
const (
	DefaultBeta           = 0.5
	DefaultGamma          = 0.8
	DefaultDelta          = 0.7
	DefaultSigma          = 0.55
	DefaultGain           = 5.0
	DefaultTheta          = 0.8
	DefaultThetaReduction = 0.1
	DefaultExecutionTries = 10

	// MinActivation is the floor for resource activation and the
	// admission threshold. Neither ever reaches zero.
	MinActivation = 0.00001
)

// Params controls the runtime dynamics of a network. A Network keeps its
// own copy; nothing mutates it after construction.
type Params struct {
	Beta           float64 `json:"beta"`            // inertia of activation
	Gamma          float64 `json:"gamma"`           // influence of activation
	Delta          float64 `json:"delta"`           // influence of inhibition
	Sigma          float64 `json:"sigma"`           // breadth of the sigmoid transfer function
	Theta          float64 `json:"theta"`           // initial execution threshold
	ThetaReduction float64 `json:"theta_reduction"` // threshold relaxation per idle attempt
	Gain           float64 `json:"gain"`            // steepness of the sigmoid transfer function
	ExecutionTries int     `json:"execution_tries"`

	GoalTracking      bool `json:"goal_tracking"`
	TransferFunction  bool `json:"transfer_function"`
	ConcurrentActions bool `json:"concurrent_actions"`
	InboxProcessing   bool `json:"inbox_processing"`
}

// DefaultParams returns the parameter set used when nothing else is
// configured.
func DefaultParams() Params {
	return Params{
		Beta:           DefaultBeta,
		Gamma:          DefaultGamma,
		Delta:          DefaultDelta,
		Sigma:          DefaultSigma,
		Theta:          DefaultTheta,
		ThetaReduction: DefaultThetaReduction,
		Gain:           DefaultGain,
		ExecutionTries: DefaultExecutionTries,
		GoalTracking:   true,
	}
}

// Validate reports the first parameter outside its legal range.
func (p Params) Validate() error {
	switch {
	case p.Beta < 0:
		return fmt.Errorf("%w: beta must not be negative, got %v", ErrInvalidParams, p.Beta)
	case p.Gamma < 0:
		return fmt.Errorf("%w: gamma must not be negative, got %v", ErrInvalidParams, p.Gamma)
	case p.Delta < 0:
		return fmt.Errorf("%w: delta must not be negative, got %v", ErrInvalidParams, p.Delta)
	case p.Theta <= 0:
		return fmt.Errorf("%w: theta must be positive, got %v", ErrInvalidParams, p.Theta)
	case p.ThetaReduction < 0:
		return fmt.Errorf("%w: theta reduction must not be negative, got %v", ErrInvalidParams, p.ThetaReduction)
	case p.ExecutionTries < 1:
		return fmt.Errorf("%w: execution tries must be at least 1, got %d", ErrInvalidParams, p.ExecutionTries)
	}
	return nil
}
