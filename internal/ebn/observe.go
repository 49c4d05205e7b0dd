package ebn

import "sync/atomic"

type EventType string

const (
	EventStructureChanged EventType = "structure_changed"
	EventValuesChanged    EventType = "values_changed"
)

// Event tells observers that the network changed. Node is set for
// structural changes.
type Event struct {
	Type    EventType `json:"type"`
	Network string    `json:"network"`
	Tick    uint64    `json:"tick"`
	Node    string    `json:"node,omitempty"`
}

// Subscription receives events on C. Events that do not fit the buffer are
// dropped so that a slow observer never stalls a tick.
type Subscription struct {
	C       <-chan Event
	ch      chan Event
	dropped atomic.Int64
}

// Dropped is the number of events that did not fit the buffer.
func (s *Subscription) Dropped() int64 { return s.dropped.Load() }

func (s *Subscription) deliver(e Event) {
	select {
	case s.ch <- e:
	default:
		s.dropped.Add(1)
	}
}

// Subscribe registers an observer with room for buffer pending events.
func (n *Network) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	s := &Subscription{C: ch, ch: ch}
	n.subscribers = append(n.subscribers, s)
	return s
}

// Unsubscribe removes the observer and closes its channel.
func (n *Network) Unsubscribe(s *Subscription) {
	for i, sub := range n.subscribers {
		if sub == s {
			n.subscribers = append(n.subscribers[:i], n.subscribers[i+1:]...)
			close(s.ch)
			return
		}
	}
}

func (n *Network) publish(e Event) {
	for _, s := range n.subscribers {
		s.deliver(e)
	}
}

func (n *Network) structureChanged(node string) {
	n.publish(Event{Type: EventStructureChanged, Network: n.name, Tick: n.tick, Node: node})
}

func (n *Network) valuesChanged() {
	n.publish(Event{Type: EventValuesChanged, Network: n.name, Tick: n.tick})
}
