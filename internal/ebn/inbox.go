package ebn

import (
	"fmt"

	"go.uber.org/zap"
)

type MessageKind string

const (
	SetImportance MessageKind = "set_importance"
	SetRelevance  MessageKind = "set_relevance"
)

// Message changes a goal between ticks. SetRelevance replaces the goal's
// relevance condition with the named perceptions, all non-negated; an empty
// list makes the goal always relevant.
type Message struct {
	Kind        MessageKind
	Goal        string
	Value       float64
	Perceptions []string
}

// Post queues a message for the next ProcessInbox. It is the only method
// that may be called concurrently with a running tick.
func (n *Network) Post(m Message) error {
	select {
	case n.inbox <- m:
		return nil
	default:
		return ErrInboxFull
	}
}

// ProcessInbox applies all queued messages and returns how many were
// applied. Messages naming unknown goals or perceptions are logged and
// skipped.
func (n *Network) ProcessInbox() int {
	applied := 0
	for {
		select {
		case m := <-n.inbox:
			if err := n.apply(m); err != nil {
				n.logger.Warn("inbox message rejected", zap.String("kind", string(m.Kind)), zap.String("goal", m.Goal), zap.Error(err))
				continue
			}
			applied++
		default:
			return applied
		}
	}
}

func (n *Network) apply(m Message) error {
	g := n.Goal(m.Goal)
	if g == nil {
		return fmt.Errorf("%w: goal not existing: %s", ErrNetworkConfiguration, m.Goal)
	}
	switch m.Kind {
	case SetImportance:
		g.SetImportance(m.Value)
	case SetRelevance:
		var c Condition
		for _, name := range m.Perceptions {
			p := n.Perception(name)
			if p == nil {
				return fmt.Errorf("%w: perception not existing: %s", ErrNetworkConfiguration, name)
			}
			c.Add(NewProposition(p, false))
		}
		g.SetRelevance(c)
	default:
		return fmt.Errorf("unknown message kind %q", m.Kind)
	}
	return nil
}
