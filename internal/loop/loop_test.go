package loop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManualFiresInOrder(t *testing.T) {
	m := NewManual()
	var got []int
	m.Schedule(20*time.Millisecond, func() { got = append(got, 2) })
	m.Schedule(10*time.Millisecond, func() { got = append(got, 1) })
	cancel := m.Schedule(15*time.Millisecond, func() { got = append(got, 99) })
	cancel()

	m.Advance(5 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	m.Advance(20 * time.Millisecond)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v", got)
	}
	if m.Pending() != 0 {
		t.Fatalf("pending %d", m.Pending())
	}
}

func TestManualRescheduleFromCallback(t *testing.T) {
	m := NewManual()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			m.Schedule(10*time.Millisecond, tick)
		}
	}
	m.Schedule(10*time.Millisecond, tick)
	m.Advance(100 * time.Millisecond)
	if count != 3 {
		t.Fatalf("count %d", count)
	}
}

func TestLoopDo(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Serve(ctx)

	errFoo := errors.New("foo")
	if err := l.Do(ctx, func() error { return errFoo }); !errors.Is(err, errFoo) {
		t.Fatalf("got %v", err)
	}

	fired := make(chan struct{})
	l.Schedule(time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestLoopCancel(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Serve(ctx)

	fired := make(chan struct{}, 1)
	stop := l.Schedule(20*time.Millisecond, func() { fired <- struct{}{} })
	stop()
	stop()

	select {
	case <-fired:
		t.Fatal("cancelled timer fired")
	case <-time.After(60 * time.Millisecond):
	}
}
