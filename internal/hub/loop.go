// Package hub runs the coordinator: a single goroutine that consumes every
// inbound message, connection close, and timer firing as a run-to-completion
// turn. Room and player state is only ever touched from that goroutine, so
// the game layer needs no locking.
package hub

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campblood/server/internal/game"
)

// Loop is the turn executor. Transport goroutines and timers submit
// closures; Run executes them one at a time in submission order.
type Loop struct {
	logger *zap.Logger
	turns  chan func()

	stopOnce sync.Once
	done     chan struct{}
}

// NewLoop creates a Loop with a bounded turn queue.
//
// Precondition: logger must be non-nil.
func NewLoop(logger *zap.Logger) *Loop {
	return &Loop{
		logger: logger,
		turns:  make(chan func(), 512),
		done:   make(chan struct{}),
	}
}

// Submit enqueues fn to run as its own turn. Blocks while the queue is full;
// returns without running fn once the loop has stopped.
func (l *Loop) Submit(fn func()) {
	select {
	case l.turns <- fn:
	case <-l.done:
	}
}

// Run executes turns until Stop is called or the context is cancelled.
//
// Postcondition: No turn runs after Run returns.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.turns:
			fn()
		case <-l.done:
			return nil
		case <-ctx.Done():
			l.Stop()
			return nil
		}
	}
}

// Stop halts the loop. Safe to call multiple times.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Schedule arms a one-shot task that runs fn as a loop turn after d.
// Cancelling the returned task prevents fn from running even if the
// underlying timer already fired and the turn is queued.
func (l *Loop) Schedule(d time.Duration, fn func()) game.Task {
	t := &task{}
	t.timer = time.AfterFunc(d, func() {
		l.Submit(func() {
			t.mu.Lock()
			cancelled := t.cancelled
			t.mu.Unlock()
			if !cancelled {
				fn()
			}
		})
	})
	return t
}

// task is a cancellable handle to a scheduled turn.
type task struct {
	mu        sync.Mutex
	timer     *time.Timer
	cancelled bool
}

// Cancel prevents the task's function from running. Safe to call multiple
// times and after the task ran.
func (t *task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelled = true
	t.timer.Stop()
}
