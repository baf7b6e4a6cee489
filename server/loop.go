package server

import (
	"context"
	"errors"
	"sync"

	"github.com/wfunc/drawguess/logger"
)

var ErrLoopStopped = errors.New("event loop stopped")

// Loop runs every room mutation on a single goroutine. Socket readers and timers post
// closures to it instead of touching game state themselves.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

func NewLoop(buffer int) *Loop {
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Dispatch adapts Post to the timer package.
func (l *Loop) Dispatch(fn func()) {
	if !l.Post(fn) {
		logger.Log.Debug("timer fired after loop stopped")
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}
}

// Run processes tasks until ctx is cancelled. A panicking task is logged and skipped.
func (l *Loop) Run(ctx context.Context) {
	defer l.stop()
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.tasks:
			l.run(fn)
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorw("event loop task panicked", "panic", r)
		}
	}()
	fn()
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Loop) Done() <-chan struct{} {
	return l.done
}
