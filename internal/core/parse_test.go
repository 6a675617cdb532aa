package core

import (
	"math"
	"slices"
	"testing"
)

func TestParseBoolean(t *testing.T) {
	tests := []struct {
		in      string
		current bool
		want    bool
	}{
		{"yes", false, true},
		{"Enabled", false, true},
		{"active", false, true},
		{"toggle", true, false},
		{"toggle", false, true},
		{"no", true, false},
		{"garbage", true, false},
	}
	for _, tt := range tests {
		if got := ParseBoolean(tt.in, tt.current); got != tt.want {
			t.Errorf("ParseBoolean(%q, %v) = %v, want %v", tt.in, tt.current, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	if v := ParseFloat("0.5"); v != 0.5 {
		t.Fatalf("got %v", v)
	}
	if v := ParseFloat("0.5x"); !math.IsNaN(v) {
		t.Fatalf("expected NaN, got %v", v)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"#ff0000", 0xff0000ff, true},
		{"00ff0080", 0x00ff0080, true},
		{"#fff", 0, false},
		{"#gggggg", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseColor(%q) = %x, %v", tt.in, got, ok)
		}
	}
}

func TestParseFloatArray(t *testing.T) {
	got, err := ParseFloatArray("[0.215 0.61  0.355 1]")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []float64{0.215, 0.61, 0.355, 1}) {
		t.Fatalf("got %v", got)
	}

	empty, err := ParseFloatArray("[]")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("got %v, %v", empty, err)
	}

	for _, bad := range []string{"0.1 0.2", "[0.1 x]", "[0.1"} {
		if _, err := ParseFloatArray(bad); err == nil {
			t.Errorf("ParseFloatArray(%q) expected error", bad)
		}
	}
}

func TestSplitArgs(t *testing.T) {
	got := SplitArgs(`animations default yes 300 var 3 [ 0.215 0.61 0.355 1 ] "a b"`)
	want := []string{"animations", "default", "yes", "300", "var", "3", "[ 0.215 0.61 0.355 1 ]", "a b"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(-1, 3) != 2 || Wrap(3, 3) != 0 || Wrap(4, 3) != 1 {
		t.Fatal("wrap")
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"127.0.0.1", 8080, "127.0.0.1:8080"},
		{"", 8080, ":8080"},
		{"::1", 9000, "[::1]:9000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Address(tt.host, tt.port); got != tt.want {
				t.Fatalf("got %q", got)
			}
		})
	}
}
