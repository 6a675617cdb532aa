package anim

import (
	"errors"
	"fmt"
	"math"

	"github.com/ItsNotGoodName/x-scroller/internal/geom"
)

const (
	// NDim is the number of dimensions of every curve.
	NDim = 2
	// NIntervals is the size of the arclength lookup table minus one.
	NIntervals = 100
)

var ErrCurveMismatch = errors.New("animation curve mismatch")

type bezier struct {
	n int
	b [NDim][]float64
	u [NIntervals + 1]float64
}

func newBezier(order int, points []float64, end [NDim]float64) bezier {
	if len(points) == 0 || order < 1 || len(points) != NDim*(order-1) {
		// Linear parameter.
		return bezier{}
	}

	curve := bezier{n: order}
	for d := 0; d < NDim; d++ {
		curve.b[d] = make([]float64, order+1)
	}
	for i, idx := 1, 0; i < order; i++ {
		for d := 0; d < NDim; d++ {
			curve.b[d][i] = points[idx]
			idx++
		}
	}
	for d := 0; d < NDim; d++ {
		curve.b[d][order] = end[d]
	}
	curve.createLookup()
	return curve
}

func (c *bezier) eval(t float64) [NDim]float64 {
	var out [NDim]float64
	for i := 0; i <= c.n; i++ {
		b := geom.Bernstein(c.n, i, t)
		for d := 0; d < NDim; d++ {
			out[d] += c.b[d][i] * b
		}
	}
	return out
}

// createLookup fills u so that u[i] is the curve parameter at which i/NIntervals
// of the total arclength has been travelled.
func (c *bezier) createLookup() {
	var (
		prev   [NDim]float64
		length float64
		seg    [NIntervals + 1]float64
	)
	for i := 0; i <= NIntervals; i++ {
		b := c.eval(float64(i) / NIntervals)
		sum := 0.0
		for d := 0; d < NDim; d++ {
			sum += (b[d] - prev[d]) * (b[d] - prev[d])
		}
		seg[i] = math.Sqrt(sum)
		length += seg[i]
		prev = b
	}

	last := 0
	len0, len1, u0 := 0.0, 0.0, 0.0
	for i := 0; i <= NIntervals; i++ {
		t := float64(i) * length / NIntervals
		for t > len1 && last < NIntervals {
			len0 = len1
			u0 = float64(last) / NIntervals
			last++
			len1 += seg[last]
		}
		if last == 0 || len1 == len0 {
			c.u[i] = float64(last) / NIntervals
			continue
		}
		u1 := float64(last) / NIntervals
		k := (t - len0) / (len1 - len0)
		c.u[i] = (1-k)*u0 + k*u1
	}
}

func (c *bezier) lookup(t float64) (float64, float64) {
	t0 := math.Floor(t * NIntervals)
	t1 := math.Ceil(t * NIntervals)
	t0 = geom.Clamp(t0, 0, NIntervals)
	t1 = geom.Clamp(t1, 0, NIntervals)

	var u float64
	if t0 != t1 {
		k := (t*NIntervals - t0) / (t1 - t0)
		u = (1-k)*c.u[int(t0)] + k*c.u[int(t1)]
	} else {
		u = c.u[int(t0)]
	}
	b := c.eval(u)
	return b[0], b[1]
}

// Curve is an immutable easing definition: a progress curve plus an optional
// offset curve scaled by OffsetScale.
type Curve struct {
	Enabled     bool
	DurationMS  uint32
	OffsetScale float64
	v           bezier
	off         bezier
}

// NewCurve builds a curve. varPoints and offPoints hold the interior control
// points interleaved per dimension; nil means linear.
func NewCurve(enabled bool, durationMS uint32, varOrder int, varPoints []float64, offsetScale float64, offOrder int, offPoints []float64) (*Curve, error) {
	if enabled && varPoints != nil && len(varPoints) != NDim*(varOrder-1) {
		return nil, fmt.Errorf("%w: var curve provided %d points, need %d for curve of order %d",
			ErrCurveMismatch, len(varPoints), NDim*(varOrder-1), varOrder)
	}
	if enabled && offPoints != nil && len(offPoints) != NDim*(offOrder-1) {
		return nil, fmt.Errorf("%w: off curve provided %d points, need %d for curve of order %d",
			ErrCurveMismatch, len(offPoints), NDim*(offOrder-1), offOrder)
	}

	return &Curve{
		Enabled:     enabled,
		DurationMS:  durationMS,
		OffsetScale: offsetScale,
		v:           newBezier(varOrder, varPoints, [NDim]float64{1, 1}),
		off:         newBezier(offOrder, offPoints, [NDim]float64{1, 0}),
	}, nil
}

// Values maps a uniform time u in [0, 1] through the curve.
func (c *Curve) Values(u float64) Values {
	if u >= 1 {
		return Settled
	}

	var t, tOff float64
	if c.v.n > 0 {
		tOff, t = c.v.lookup(u)
	} else {
		t, tOff = u, u
	}

	if tOff >= 1 {
		return Values{T: t, X: 1}
	}
	if c.off.n > 0 {
		x, y := c.off.lookup(tOff)
		return Values{T: t, X: x, Y: y, Scale: c.OffsetScale}
	}
	return Values{T: t, X: tOff}
}
