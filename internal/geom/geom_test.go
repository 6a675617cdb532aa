package geom

import (
	"math"
	"testing"
)

func TestComb(t *testing.T) {
	tests := []struct{ n, i, want int }{
		{3, 0, 1},
		{3, 1, 3},
		{3, 2, 3},
		{3, 3, 1},
		{5, 2, 10},
		{2, 3, 0},
	}
	for _, tt := range tests {
		if got := Comb(tt.n, tt.i); got != tt.want {
			t.Errorf("Comb(%d, %d) = %d, want %d", tt.n, tt.i, got, tt.want)
		}
	}
}

func TestBernsteinPartitionOfUnity(t *testing.T) {
	for _, x := range []float64{0, 0.25, 0.5, 0.9, 1} {
		sum := 0.0
		for i := 0; i <= 4; i++ {
			sum += Bernstein(4, i, x)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("sum at %v = %v", x, sum)
		}
	}
	if Bernstein(0, 0, 0.3) != 1 {
		t.Error("order zero must be 1")
	}
}

func TestFractionToPixels(t *testing.T) {
	if got := FractionToPixels(0.5, 1000, 5); got != 490 {
		t.Fatalf("got %v", got)
	}
	if Lerp(10, 20, 0.5) != 15 {
		t.Fatal("lerp")
	}
	if Clamp(3, 0.2, 1) != 1 || Clamp(0.1, 0.2, 1) != 0.2 {
		t.Fatal("clamp")
	}
}
