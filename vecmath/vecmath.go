// Package vecmath provides the 2D vector and angle helpers used by the
// locomotion and outline code. Vectors are gonum r2.Vec values.
package vecmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the floor applied to distances used as divisors.
const Epsilon = 1e-6

// Lerp moves a toward b by fraction t.
func Lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Heading returns the angle of v relative to the +X axis.
// The zero vector has heading 0.
func Heading(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// Mag returns the length of v.
func Mag(v r2.Vec) float64 {
	return r2.Norm(v)
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// SafeDist is Dist floored at Epsilon so it can be used as a divisor.
func SafeDist(a, b r2.Vec) float64 {
	return math.Max(Epsilon, Dist(a, b))
}

// FromPolar converts a radius and angle into a vector.
func FromPolar(radius, angle float64) r2.Vec {
	sin, cos := math.Sincos(angle)
	return r2.Vec{X: radius * cos, Y: radius * sin}
}

// SetMag returns v scaled to length m. The zero vector is returned unchanged.
func SetMag(v r2.Vec, m float64) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return v
	}
	return r2.Scale(m/n, v)
}

// Rotate rotates v about the origin by angle radians.
func Rotate(v r2.Vec, angle float64) r2.Vec {
	return r2.Rotate(v, angle, r2.Vec{})
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// MapRange re-maps v from [inLo, inHi] onto [outLo, outHi].
// With clamp set the result is kept inside the output range.
// A zero-width input range maps everything to outLo.
func MapRange(v, inLo, inHi, outLo, outHi float64, clamp bool) float64 {
	if inHi == inLo {
		return outLo
	}
	out := outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
	if !clamp {
		return out
	}
	if outLo < outHi {
		return Clamp(out, outLo, outHi)
	}
	return Clamp(out, outHi, outLo)
}
