package loop

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by Advance. Callbacks run on the caller's goroutine.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at        time.Duration
	seq       int
	fire      func()
	cancelled bool
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Schedule(d time.Duration, fire func()) Cancel {
	m.seq++
	t := &manualTimer{at: m.now + d, seq: m.seq, fire: fire}
	m.timers = append(m.timers, t)
	return func() { t.cancelled = true }
}

// Now returns the time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of armed timers.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in order. Timers
// scheduled by callbacks fire in the same call if they become due.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		t := m.next(end)
		if t == nil {
			break
		}
		m.now = t.at
		t.cancelled = true
		t.fire()
	}
	m.now = end
	m.compact()
}

func (m *Manual) next(end time.Duration) *manualTimer {
	var due []*manualTimer
	for _, t := range m.timers {
		if !t.cancelled && t.at <= end {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	return due[0]
}

func (m *Manual) compact() {
	timers := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			timers = append(timers, t)
		}
	}
	m.timers = timers
}
