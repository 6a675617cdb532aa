// Package anim steps easing curves on a timer and answers what fraction of a
// layout transition should be displayed right now.
package anim

import (
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/loop"
)

type Mode int

const (
	ModeDisabled Mode = iota
	ModeDefault
	ModeWindowOpen
	ModeWindowMove
	ModeWindowSize
)

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeDefault:
		return "default"
	case ModeWindowOpen:
		return "window_open"
	case ModeWindowMove:
		return "window_move"
	case ModeWindowSize:
		return "window_size"
	default:
		return "unknown"
	}
}

// Values are the interpolation parameters of the current frame.
type Values struct {
	// T is the progress from the old to the new geometry.
	T float64
	// X is the progress along axes that moved.
	X float64
	// Y is the perpendicular wobble, multiplied by Scale and the viewport extent.
	Y     float64
	Scale float64
}

// Settled means no interpolation.
var Settled = Values{T: 1, X: 1}

type Config struct {
	Enabled    bool
	Frequency  time.Duration
	Default    *Curve
	WindowOpen *Curve
	WindowMove *Curve
	WindowSize *Curve
}

// curve returns the curve for mode, falling back to the default curve.
func (c Config) curve(mode Mode) *Curve {
	var curve *Curve
	switch mode {
	case ModeDefault:
		curve = c.Default
	case ModeWindowOpen:
		curve = c.WindowOpen
	case ModeWindowMove:
		curve = c.WindowMove
	case ModeWindowSize:
		curve = c.WindowSize
	case ModeDisabled:
		return nil
	}
	if curve == nil {
		curve = c.Default
	}
	return curve
}

func NewContext(sched loop.Scheduler, cfg Config) *Context {
	return &Context{
		sched: sched,
		cfg:   cfg,
		mode:  ModeDefault,
	}
}

// Context is the single animation run of a compositor. Starting a run
// supersedes the previous one.
type Context struct {
	sched  loop.Scheduler
	cfg    Config
	mode   Mode
	step   int
	nsteps int
	onStep func()
	onEnd  func()
	cancel loop.Cancel
}

func (c *Context) SetConfig(cfg Config) {
	c.cfg = cfg
}

func (c *Context) Config() Config {
	return c.cfg
}

func (c *Context) Mode() Mode {
	return c.mode
}

// Create selects the curve for the next Start.
func (c *Context) Create(mode Mode) {
	c.mode = mode
}

func (c *Context) Enabled() bool {
	if !c.cfg.Enabled {
		return false
	}
	curve := c.cfg.curve(c.mode)
	return curve != nil && curve.Enabled
}

func (c *Context) duration() time.Duration {
	if !c.cfg.Enabled {
		return 0
	}
	curve := c.cfg.curve(c.mode)
	if curve == nil {
		return 0
	}
	return time.Duration(curve.DurationMS) * time.Millisecond
}

func (c *Context) frequency() time.Duration {
	if c.cfg.Frequency < time.Millisecond {
		return time.Millisecond
	}
	return c.cfg.Frequency
}

// Start runs begin and step once, then calls step on every tick until the
// curve's duration is exhausted, then end. When disabled only step runs.
func (c *Context) Start(begin, step, end func()) {
	if !c.Enabled() {
		step()
		return
	}

	c.nsteps = max(1, int(c.duration()/c.frequency()))
	c.step = 1
	if begin != nil {
		begin()
	}
	step()
	c.Stop()
	c.onStep = step
	c.onEnd = end
	c.cancel = c.sched.Schedule(c.frequency(), c.tick)
}

// Stop cancels the tick timer without calling the end callback.
func (c *Context) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Running reports whether a tick is scheduled.
func (c *Context) Running() bool {
	return c.cancel != nil
}

func (c *Context) tick() {
	c.step++
	if c.step <= c.nsteps {
		if c.onStep != nil {
			c.onStep()
		}
		c.cancel = c.sched.Schedule(c.frequency(), c.tick)
		return
	}

	c.cancel = nil
	c.mode = ModeDefault
	if c.onEnd != nil {
		c.onEnd()
	}
}

// Values returns the interpolation parameters of the current step.
func (c *Context) Values() Values {
	if !c.Enabled() || c.nsteps == 0 {
		return Settled
	}
	return c.cfg.curve(c.mode).Values(float64(c.step) / float64(c.nsteps))
}
