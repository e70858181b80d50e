package algorithms

import (
	"context"
	"time"

	"k8s.io/utils/clock"
)

// Budget tracks the wall-clock allowance of a run. It is polled between
// steps, never mid-step.
type Budget struct {
	clock   clock.PassiveClock
	start   time.Time
	maxTime time.Duration
}

// NewBudget starts a budget of maxTime on c. A nil clock means the real
// clock; a non-positive maxTime never expires.
func NewBudget(c clock.PassiveClock, maxTime time.Duration) *Budget {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Budget{clock: c, start: c.Now(), maxTime: maxTime}
}

// Elapsed returns the time spent since the budget started.
func (b *Budget) Elapsed() time.Duration {
	return b.clock.Since(b.start)
}

// Exhausted reports whether the allowance has been used up.
func (b *Budget) Exhausted() bool {
	return b.maxTime > 0 && b.Elapsed() >= b.maxTime
}

// Search is an engine advanced one step at a time.
type Search interface {
	Step()
	Done() bool
	Steps() int
}

// StopReason describes why Run returned.
type StopReason string

const (
	// StopCompleted means the engine reported Done.
	StopCompleted StopReason = "Completed"
	// StopDeadline means the wall-clock budget ran out.
	StopDeadline StopReason = "Deadline"
	// StopCanceled means the context was canceled.
	StopCanceled StopReason = "Canceled"
)

// Run steps s until it is done, the budget is exhausted or ctx is canceled.
// Both limits are checked at step boundaries, so a started step always
// finishes. afterStep, if set, is called after every step.
func Run(ctx context.Context, s Search, b *Budget, afterStep func()) (StopReason, error) {
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return StopCanceled, err
		}
		if b.Exhausted() {
			return StopDeadline, nil
		}
		s.Step()
		if afterStep != nil {
			afterStep()
		}
	}
	return StopCompleted, nil
}
