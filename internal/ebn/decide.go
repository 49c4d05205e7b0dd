package ebn

import (
	"sort"

	"go.uber.org/zap"
)

// TickReport describes the outcome of the last Decide call.
type TickReport struct {
	Tick      uint64   `json:"tick"`
	Attempts  int      `json:"attempts"`
	Executed  []string `json:"executed"`
	Threshold float64  `json:"threshold"`
	// Failures holds the competences whose actions returned an error.
	Failures []ActionFailure `json:"failures,omitempty"`
}

type ActionFailure struct {
	Competence string `json:"competence"`
	Error      string `json:"error"`
}

// Report returns the outcome of the last Decide.
func (n *Network) Report() TickReport {
	r := n.report
	r.Executed = append([]string(nil), r.Executed...)
	r.Failures = append([]ActionFailure(nil), r.Failures...)
	return r
}

// Decide runs one control tick: refresh the perceptions, then spread
// activation and perform admitted competences until one executes or the
// execution tries are used up. It reports whether anything executed.
func (n *Network) Decide() bool {
	n.tick++
	n.report = TickReport{Tick: n.tick}

	if n.params.InboxProcessing {
		n.ProcessInbox()
	}
	n.UpdatePerceptions()
	n.valuesChanged()

	executed := false
	for attempt := 0; attempt < n.params.ExecutionTries && !executed; attempt++ {
		n.report.Attempts++
		n.report.Threshold = n.threshold
		n.SpreadActivation()
		executed = n.PerformActions()
		n.valuesChanged()
	}

	n.logger.Debug("tick",
		zap.Uint64("tick", n.tick),
		zap.Int("attempts", n.report.Attempts),
		zap.Strings("executed", n.report.Executed),
		zap.Float64("threshold", n.threshold))
	return executed
}

// UpdatePerceptions marks every perception stale so it reads its belief
// once more.
func (n *Network) UpdatePerceptions() {
	for _, p := range n.perceptions {
		p.Update()
	}
}

// SpreadActivation computes executability and activation of every
// competence from the values committed in the previous spread, then commits
// all of them at once.
func (n *Network) SpreadActivation() {
	for _, c := range n.competences {
		c.CalculateExecutability()
	}
	for _, c := range n.competences {
		c.CalculateActivation(n)
	}
	for _, c := range n.competences {
		c.SetToNewActivation()
	}
}

// candidates returns the competences that may run this attempt, highest
// activation first. Ties keep insertion order.
func (n *Network) candidates() []*Competence {
	var ranked []*Competence
	for _, c := range n.competences {
		c.executed = false
		if len(c.actions) == 0 || c.executability <= 0 || c.activation < n.threshold {
			continue
		}
		ranked = append(ranked, c)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].activation > ranked[j].activation
	})
	return ranked
}

// PerformActions admits candidates greedily against resource capacity and
// performs them. Without concurrent actions it stops after the first
// competence that executed. It then adapts the threshold: relaxed after an
// empty attempt, reset to theta otherwise.
func (n *Network) PerformActions() bool {
	for _, r := range n.resources {
		r.reset()
	}

	executed := false
	for _, c := range n.candidates() {
		if err := c.Perform(n); err != nil {
			n.logger.Warn("competence failed", zap.String("competence", c.name), zap.Error(err))
			n.report.Failures = append(n.report.Failures, ActionFailure{Competence: c.name, Error: err.Error()})
			continue
		}
		if !c.executed {
			continue
		}
		executed = true
		n.report.Executed = append(n.report.Executed, c.name)
		if !n.params.ConcurrentActions {
			break
		}
	}

	for _, r := range n.resources {
		r.relax(n.params.ThetaReduction)
	}
	if executed {
		n.threshold = n.params.Theta
	} else {
		n.threshold -= n.params.ThetaReduction
		if n.threshold < MinActivation {
			n.threshold = MinActivation
		}
	}
	return executed
}
