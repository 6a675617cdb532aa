package layout

import (
	"fmt"
	"testing"
)

// place lays the strip out around the active child starting at off and
// returns every child position.
func place(s Strip, off float64) []float64 {
	pos := make([]float64, len(s.Sizes))
	pos[s.Active] = off
	for i := s.Active + 1; i < len(s.Sizes); i++ {
		pos[i] = pos[i-1] + s.outer(i-1)
	}
	for i := s.Active - 1; i >= 0; i-- {
		pos[i] = pos[i+1] - s.outer(i)
	}
	return pos
}

func TestStripOffset(t *testing.T) {
	tests := []struct {
		name  string
		strip Strip
		want  float64
	}{
		{
			name:  "center modifier",
			strip: Strip{Start: 0, Extent: 1000, Scale: 1, Sizes: []float64{600, 400, 600}, Active: 1, Pos: 900, Center: true},
			want:  300,
		},
		{
			name:  "everything fits",
			strip: Strip{Start: 100, Extent: 1000, Gap: 10, Scale: 1, Sizes: []float64{280, 280}, Active: 1, Pos: 0},
			want:  100 + 0.5*(1000-600) + 300 + 10,
		},
		{
			name:  "already flush at the near edge",
			strip: Strip{Start: 0, Extent: 1000, Scale: 1, Sizes: []float64{600, 600, 600}, Active: 1, Pos: 0},
			want:  0,
		},
		{
			name:  "least movement wins",
			strip: Strip{Start: 0, Extent: 1000, Scale: 1, Sizes: []float64{600, 600, 600}, Active: 1, Pos: 300},
			want:  400,
		},
		{
			name:  "last child flush at the far edge",
			strip: Strip{Start: 0, Extent: 1000, Scale: 1, Sizes: []float64{300, 300, 300, 300}, Active: 3, Pos: 1200},
			want:  700,
		},
		{
			// Two children fit against the far edge once they share a gap,
			// which leaves the active child 5px in.
			name:  "neighbors share a gap when fitting",
			strip: Strip{Start: 0, Extent: 1000, Gap: 10, Scale: 1, Sizes: []float64{485, 480, 480}, Active: 0, Pos: 0},
			want:  5,
		},
		{
			name:  "scaled",
			strip: Strip{Start: 0, Extent: 1000, Scale: 0.5, Sizes: []float64{1200, 1200, 1200}, Active: 1, Pos: 0},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.strip.Offset(); got != tt.want {
				t.Fatalf("Offset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStripOffsetKeepsActiveVisibleWithoutGaps(t *testing.T) {
	sizes := [][]float64{
		{600, 600, 600},
		{300, 700, 400, 500},
		{250, 250, 250, 250, 250},
		{900, 200, 900},
		{1000, 1000},
	}
	for si, sz := range sizes {
		for active := range sz {
			for _, pos := range []float64{-1500, -300, 0, 250, 1200} {
				s := Strip{Start: 0, Extent: 1000, Scale: 1, Sizes: sz, Active: active, Pos: pos}
				t.Run(fmt.Sprintf("%d/%d/%v", si, active, pos), func(t *testing.T) {
					off := s.Offset()
					p := place(s, off)
					if off < s.Start-1 || off+sz[active] > s.Start+s.Extent+1 {
						t.Fatalf("active [%v, %v] outside viewport", off, off+sz[active])
					}
					last := len(sz) - 1
					if p[0] > s.Start+1 {
						t.Fatalf("gap at the near edge: first child at %v", p[0])
					}
					if p[last]+sz[last] < s.Start+s.Extent-1 {
						t.Fatalf("gap at the far edge: last child ends at %v", p[last]+sz[last])
					}
				})
			}
		}
	}
}
