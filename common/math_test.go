package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestClampLength(t *testing.T) {
	cases := []struct {
		name string
		in   cp.Vector
		max  float64
		want float64
	}{
		{"under limit untouched", cp.Vector{X: 3}, 5, 3},
		{"over limit scaled", cp.Vector{X: 3, Y: 4}, 2.5, 2.5},
		{"zero vector passes", cp.Vector{}, 2, 0},
		{"non-positive limit zeroes", cp.Vector{X: 7}, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClampLength(tc.in, tc.max).Length()
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("length = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	got := Rotate(cp.Vector{X: 1}, math.Pi/2)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Fatalf("rotate = %v", got)
	}
}

func TestAngleBetween(t *testing.T) {
	cases := []struct {
		name string
		a, b cp.Vector
		want float64
	}{
		{"parallel", cp.Vector{X: 1}, cp.Vector{X: 5}, 0},
		{"orthogonal", cp.Vector{X: 1}, cp.Vector{Y: 2}, math.Pi / 2},
		{"opposed", cp.Vector{X: 1}, cp.Vector{X: -3}, math.Pi},
		{"zero input", cp.Vector{}, cp.Vector{X: 1}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AngleBetween(tc.a, tc.b); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("angle = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNearestPointIndex(t *testing.T) {
	points := []cp.Vector{{X: 0}, {X: 10}, {X: 4}}
	if got := NearestPointIndex(points, cp.Vector{X: 5}); got != 2 {
		t.Fatalf("index = %d", got)
	}
	if got := NearestPointIndex(nil, cp.Vector{}); got != -1 {
		t.Fatalf("empty slice index = %d", got)
	}
}
