// Package loop runs every tree, transaction and animation mutation on a
// single goroutine.
package loop

import (
	"context"
	"sync"
	"time"
)

// Cancel stops a scheduled callback. Calling it more than once is fine.
type Cancel func()

// Scheduler arms one-shot timers whose callbacks run on the event loop.
type Scheduler interface {
	Schedule(d time.Duration, fire func()) Cancel
}

func New() *Loop {
	return &Loop{
		funcC: make(chan func(), 64),
	}
}

// Loop serializes posted functions and timer callbacks.
type Loop struct {
	funcC chan func()
}

func (l *Loop) String() string {
	return "loop.Loop"
}

func (l *Loop) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.funcC:
			fn()
		}
	}
}

// Post queues fn to run on the loop goroutine.
func (l *Loop) Post(fn func()) {
	l.funcC <- fn
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	errC := make(chan error, 1)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case l.funcC <- func() { errC <- fn() }:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errC:
		return err
	}
}

func (l *Loop) Schedule(d time.Duration, fire func()) Cancel {
	var (
		mu        sync.Mutex
		cancelled bool
	)
	isCancelled := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return cancelled
	}

	timer := time.AfterFunc(d, func() {
		l.Post(func() {
			// The timer may have been cancelled after it was posted.
			if !isCancelled() {
				fire()
			}
		})
	})

	return func() {
		mu.Lock()
		cancelled = true
		mu.Unlock()
		timer.Stop()
	}
}
