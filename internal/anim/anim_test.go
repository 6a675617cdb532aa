package anim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/loop"
)

func mustCurve(t *testing.T) func(c *Curve, err error) *Curve {
	t.Helper()
	return func(c *Curve, err error) *Curve {
		if err != nil {
			t.Fatal(err)
		}
		return c
	}
}

func TestLookupMonotonic(t *testing.T) {
	c := mustCurve(t)(NewCurve(true, 300, 3, []float64{0.215, 0.61, 0.355, 1}, 0, 0, nil))
	for i := 1; i <= NIntervals; i++ {
		if c.v.u[i] < c.v.u[i-1] {
			t.Fatalf("u[%d]=%v < u[%d]=%v", i, c.v.u[i], i-1, c.v.u[i-1])
		}
	}
	if c.v.u[0] != 0 {
		t.Fatalf("u[0] = %v", c.v.u[0])
	}
	if math.Abs(c.v.u[NIntervals]-1) > 1e-6 {
		t.Fatalf("u[N] = %v", c.v.u[NIntervals])
	}
}

func TestNewCurveMismatch(t *testing.T) {
	_, err := NewCurve(true, 300, 3, []float64{0.1, 0.2}, 0, 0, nil)
	if !errors.Is(err, ErrCurveMismatch) {
		t.Fatalf("got %v", err)
	}
	_, err = NewCurve(true, 300, 0, nil, 0.1, 3, []float64{1})
	if !errors.Is(err, ErrCurveMismatch) {
		t.Fatalf("got %v", err)
	}
	if _, err := NewCurve(false, 300, 3, []float64{0.1, 0.2}, 0, 0, nil); err != nil {
		t.Fatalf("disabled curves are not validated: %v", err)
	}
}

func TestCurveValuesLinear(t *testing.T) {
	c := mustCurve(t)(NewCurve(true, 100, 0, nil, 0, 0, nil))
	v := c.Values(0.4)
	if v.T != 0.4 || v.X != 0.4 || v.Y != 0 || v.Scale != 0 {
		t.Fatalf("got %+v", v)
	}
	if c.Values(1) != Settled {
		t.Fatal("u >= 1 must settle")
	}
}

func TestCurveValuesOffset(t *testing.T) {
	c := mustCurve(t)(NewCurve(true, 100, 0, nil, 0.05, 3, []float64{0.5, 1, 0.5, -1}))
	v := c.Values(0.5)
	if v.Scale != 0.05 {
		t.Fatalf("scale %v", v.Scale)
	}
	if v.T != 0.5 {
		t.Fatalf("t %v", v.T)
	}
}

func TestAnimationTermination(t *testing.T) {
	sched := loop.NewManual()
	c := NewContext(sched, Config{
		Enabled:   true,
		Frequency: 20 * time.Millisecond,
		Default:   mustCurve(t)(NewCurve(true, 100, 0, nil, 0, 0, nil)),
	})
	c.Create(ModeWindowMove)

	steps, ends, begins := 0, 0, 0
	c.Start(func() { begins++ }, func() { steps++ }, func() { ends++ })
	if c.nsteps != 5 {
		t.Fatalf("nsteps %d", c.nsteps)
	}

	sched.Advance(80 * time.Millisecond)
	if steps != 5 || ends != 0 {
		t.Fatalf("steps=%d ends=%d", steps, ends)
	}
	sched.Advance(time.Second)
	if steps != 5 || ends != 1 || begins != 1 {
		t.Fatalf("steps=%d ends=%d begins=%d", steps, ends, begins)
	}
	if c.Mode() != ModeDefault {
		t.Fatalf("mode %v", c.Mode())
	}
	if v := c.Values(); v != Settled {
		t.Fatalf("values after the end %+v", v)
	}
	if sched.Pending() != 0 {
		t.Fatal("timer still armed")
	}
}

func TestAnimationDisabled(t *testing.T) {
	sched := loop.NewManual()
	c := NewContext(sched, Config{Enabled: false, Frequency: 16 * time.Millisecond})
	steps := 0
	c.Start(nil, func() { steps++ }, nil)
	if steps != 1 || sched.Pending() != 0 {
		t.Fatalf("steps=%d pending=%d", steps, sched.Pending())
	}
	if c.Values() != Settled {
		t.Fatal("disabled must be settled")
	}

	c.SetConfig(Config{Enabled: true, Frequency: 16 * time.Millisecond})
	if c.Enabled() {
		t.Fatal("no curve means disabled")
	}
	c.Create(ModeDisabled)
	if c.Enabled() {
		t.Fatal("disabled mode")
	}
}

func TestAnimationRestartSupersedes(t *testing.T) {
	sched := loop.NewManual()
	c := NewContext(sched, Config{
		Enabled:   true,
		Frequency: 10 * time.Millisecond,
		Default:   mustCurve(t)(NewCurve(true, 100, 0, nil, 0, 0, nil)),
	})
	first, second := 0, 0
	c.Start(nil, func() { first++ }, nil)
	c.Start(nil, func() { second++ }, nil)
	sched.Advance(time.Second)
	if first != 1 {
		t.Fatalf("first run kept ticking: %d", first)
	}
	if second != 10 {
		t.Fatalf("second %d", second)
	}
}

func TestValuesProgress(t *testing.T) {
	sched := loop.NewManual()
	c := NewContext(sched, Config{
		Enabled:   true,
		Frequency: 25 * time.Millisecond,
		Default:   mustCurve(t)(NewCurve(true, 100, 0, nil, 0, 0, nil)),
	})
	var got []float64
	c.Start(nil, func() { got = append(got, c.Values().T) }, nil)
	sched.Advance(time.Second)
	want := []float64{0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v", got)
		}
	}
}

func TestParseCurve(t *testing.T) {
	c, err := ParseCurve([]string{"yes", "300", "var", "3", "[0.215 0.61 0.355 1]", "off", "0.05", "2", "[0.5 0.5]"})
	if err != nil {
		t.Fatal(err)
	}
	if !c.Enabled || c.DurationMS != 300 || c.v.n != 3 || c.off.n != 2 || c.OffsetScale != 0.05 {
		t.Fatalf("got %+v", c)
	}

	c, err = ParseCurve([]string{"no"})
	if err != nil || c.Enabled {
		t.Fatalf("got %+v %v", c, err)
	}

	if _, err := ParseCurve([]string{"yes", "300", "var", "3", "0.1"}); !errors.Is(err, ErrParseArray) {
		t.Fatalf("got %v", err)
	}

	if _, err := ParseCurve([]string{"yes", "300", "var", "3", "[0.1 0.2]"}); !errors.Is(err, ErrCurveMismatch) {
		t.Fatalf("got %v", err)
	}
}
