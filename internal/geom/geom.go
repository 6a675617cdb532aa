// Package geom holds the small numeric helpers shared by layout and animation.
package geom

import "math"

type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Lerp linearly interpolates from a to b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// FractionToPixels converts a fraction of extent into a size, leaving room for
// an inner gap on both sides.
func FractionToPixels(fraction, extent, gap float64) float64 {
	return math.Round(fraction*extent - 2*gap)
}

func PixelsToFraction(pixels, extent float64) float64 {
	if extent <= 0 {
		return 0
	}
	return pixels / extent
}

// Comb returns the binomial coefficient C(n, i).
func Comb(n, i int) int {
	if i > n {
		return 0
	}
	num := 1
	for j := n; j > i; j-- {
		num *= j
	}
	den := 1
	for j := 2; j <= n-i; j++ {
		den *= j
	}
	return num / den
}

// Bernstein evaluates the Bernstein basis polynomial b(i,n) at t.
func Bernstein(n, i int, t float64) float64 {
	if n == 0 {
		return 1
	}
	return float64(Comb(n, i)) * math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i))
}
