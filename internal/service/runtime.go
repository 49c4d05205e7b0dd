package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Harshitk-cp/behavenet/internal/domain"
	"github.com/Harshitk-cp/behavenet/internal/ebn"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	eventBuffer  = 1024
	eventHistory = 256
	stepTimeout  = 5 * time.Second
)

var ErrUnknownGoal = errors.New("goal not existing")

// Runtime hosts a network: it serialises ticks, persists their outcome and
// keeps the recent observer events. The network itself is never touched
// without holding mu.
type Runtime struct {
	net    *ebn.Network
	store  domain.TickStore
	logger *zap.Logger
	runID  uuid.UUID

	mu     sync.Mutex
	sub    *ebn.Subscription
	events []ebn.Event

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewRuntime(net *ebn.Network, store domain.TickStore, logger *zap.Logger) *Runtime {
	return &Runtime{
		net:    net,
		store:  store,
		logger: logger,
		runID:  uuid.New(),
		sub:    net.Subscribe(eventBuffer),
		stopCh: make(chan struct{}),
	}
}

// SetInterval sets the tick period used by Start. Zero disables the loop.
func (r *Runtime) SetInterval(d time.Duration) {
	r.interval = d
}

// RunID identifies this process's ticks in the store.
func (r *Runtime) RunID() uuid.UUID { return r.runID }

func (r *Runtime) Start() {
	if r.interval <= 0 {
		r.logger.Info("tick loop disabled, ticks run on request")
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.logger.Info("tick loop started", zap.Duration("interval", r.interval))

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), stepTimeout)
				r.Step(ctx)
				cancel()
			case <-r.stopCh:
				r.logger.Info("tick loop stopped")
				return
			}
		}
	}()
}

func (r *Runtime) Stop() {
	close(r.stopCh)
	r.wg.Wait()
}

// Step runs one decision cycle and stores its record. A failing store is
// logged; the tick has happened regardless.
func (r *Runtime) Step(ctx context.Context) *domain.TickRecord {
	r.mu.Lock()
	r.net.Decide()
	rec := r.record()
	r.drainEvents()
	r.mu.Unlock()

	if err := r.store.Create(ctx, rec); err != nil {
		r.logger.Error("failed to store tick", zap.Int64("tick", rec.Tick), zap.Error(err))
	}

	leader, activation := rec.Leader()
	r.logger.Debug("tick complete",
		zap.Int64("tick", rec.Tick),
		zap.Strings("executed", rec.Executed),
		zap.String("leader", leader),
		zap.Float64("leader_activation", activation))
	return rec
}

func (r *Runtime) record() *domain.TickRecord {
	report := r.net.Report()
	rec := &domain.TickRecord{
		ID:          uuid.New(),
		RunID:       r.runID,
		Network:     r.net.Name(),
		Tick:        int64(report.Tick),
		Attempts:    report.Attempts,
		Threshold:   report.Threshold,
		Executed:    report.Executed,
		Activations: make(map[string]float64),
	}
	if rec.Executed == nil {
		rec.Executed = []string{}
	}
	for _, c := range r.net.Competences() {
		rec.Activations[c.Name()] = c.Activation()
	}
	if len(report.Failures) > 0 {
		rec.Failures = make(map[string]string, len(report.Failures))
		for _, f := range report.Failures {
			rec.Failures[f.Competence] = f.Error
		}
	}
	return rec
}

// drainEvents moves pending events into the bounded history. Callers hold
// mu.
func (r *Runtime) drainEvents() {
	for {
		select {
		case e := <-r.sub.C:
			r.events = append(r.events, e)
		default:
			if over := len(r.events) - eventHistory; over > 0 {
				r.events = append([]ebn.Event(nil), r.events[over:]...)
			}
			return
		}
	}
}

// Events returns up to limit of the most recent events, oldest first.
func (r *Runtime) Events(limit int) []ebn.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drainEvents()
	start := 0
	if limit >= 0 && len(r.events) > limit {
		start = len(r.events) - limit
	}
	return append([]ebn.Event(nil), r.events[start:]...)
}

// DroppedEvents counts events lost because the history was not drained in
// time.
func (r *Runtime) DroppedEvents() int64 { return r.sub.Dropped() }

func (r *Runtime) Snapshot() ebn.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.net.Snapshot()
}

// Tick is the number of ticks run so far.
func (r *Runtime) Tick() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.net.Tick()
}

func (r *Runtime) History(ctx context.Context, limit int) ([]domain.TickRecord, error) {
	return r.store.ListRecent(ctx, r.runID, limit)
}

// SetImportance changes a goal's importance. With inbox processing enabled
// the change is queued and applied at the start of the next tick;
// otherwise it is applied right away.
func (r *Runtime) SetImportance(goal string, importance float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.net.Goal(goal)
	if g == nil {
		return ErrUnknownGoal
	}
	if !r.net.Params().InboxProcessing {
		g.SetImportance(importance)
		return nil
	}
	return r.net.Post(ebn.Message{Kind: ebn.SetImportance, Goal: goal, Value: importance})
}
