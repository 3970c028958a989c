package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi]. lo wins when lo > hi.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// LerpVec interpolates between two points component-wise.
func LerpVec(a, b cp.Vector, t float64) cp.Vector {
	return cp.Vector{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
	}
}

// ClampLength limits the magnitude of v to max. Zero vectors pass through.
func ClampLength(v cp.Vector, max float64) cp.Vector {
	if max <= 0 {
		return cp.Vector{}
	}
	l := v.Length()
	if l <= max || l == 0 {
		return v
	}
	return v.Mult(max / l)
}

// Polar returns the unit vector for an angle in radians.
func Polar(angle float64) cp.Vector {
	return cp.Vector{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Rotate rotates v by angle radians counter-clockwise.
func Rotate(v cp.Vector, angle float64) cp.Vector {
	sin, cos := math.Sincos(angle)
	return cp.Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle returns the heading of v in radians.
func Angle(v cp.Vector) float64 {
	return math.Atan2(v.Y, v.X)
}

// NearestPointIndex returns the index of the point closest to at. Returns
// -1 for an empty slice.
func NearestPointIndex(points []cp.Vector, at cp.Vector) int {
	best := -1
	bestDist := math.MaxFloat64
	for i, p := range points {
		d := p.DistanceSq(at)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// AngleBetween returns the unsigned angle between two directions in radians.
func AngleBetween(a, b cp.Vector) float64 {
	la := a.Length()
	lb := b.Length()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := Clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(cos)
}
