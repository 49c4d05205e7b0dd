package service

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// LoggingAction is a behavior that logs each invocation and optionally
// applies a side effect, typically a change to the belief board.
type LoggingAction struct {
	name   string
	logger *zap.Logger
	effect func() error
	calls  atomic.Int64
}

func NewLoggingAction(name string, logger *zap.Logger, effect func() error) *LoggingAction {
	return &LoggingAction{name: name, logger: logger, effect: effect}
}

func (a *LoggingAction) Name() string { return a.name }

func (a *LoggingAction) Perform() error {
	a.calls.Add(1)
	a.logger.Info("action performed", zap.String("action", a.name))
	if a.effect == nil {
		return nil
	}
	return a.effect()
}

// Calls is the number of times Perform ran.
func (a *LoggingAction) Calls() int64 { return a.calls.Load() }
