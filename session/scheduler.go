package session

import (
	"context"
	"errors"
)

// ErrLoopStopped is returned by Call once the loop no longer runs.
var ErrLoopStopped = errors.New("event loop stopped")

// Scheduler runs blocking work off the event loop and delivers the result back on it.
// done must run on the same loop that calls the Session's methods.
type Scheduler interface {
	Go(task func() error, done func(err error))
}

// Immediate runs the task and its completion synchronously on the caller.
type Immediate struct{}

func (Immediate) Go(task func() error, done func(err error)) {
	done(task())
}

// Loop is a minimal single-threaded event loop. Everything posted to it runs
// in order on the goroutine that calls Run.
type Loop struct {
	funcs   chan func()
	stopped chan struct{}
}

// NewLoop creates a loop with a buffered queue.
func NewLoop() *Loop {
	return &Loop{
		funcs:   make(chan func(), 64),
		stopped: make(chan struct{}),
	}
}

// Post enqueues f. It blocks only while the queue is full, and drops f once Run has returned.
func (l *Loop) Post(f func()) {
	select {
	case l.funcs <- f:
	case <-l.stopped:
	}
}

// Call posts f and waits until it has run.
func (l *Loop) Call(ctx context.Context, f func()) error {
	ran := make(chan struct{})
	l.Post(func() {
		defer close(ran)
		f()
	})

	select {
	case <-ran:
		return nil
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Go implements Scheduler: task runs on its own goroutine, done is posted back.
func (l *Loop) Go(task func() error, done func(err error)) {
	go func() {
		err := task()
		l.Post(func() { done(err) })
	}()
}

// Run processes posted functions until ctx is cancelled. A loop runs only once.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-l.funcs:
			f()
		}
	}
}
