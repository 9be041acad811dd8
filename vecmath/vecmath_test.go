package vecmath

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < tol
}

func TestLerp(t *testing.T) {
	a := r2.Vec{X: 0, Y: 0}
	b := r2.Vec{X: 10, Y: -20}

	got := Lerp(a, b, 0.1)
	if !near(got.X, 1) || !near(got.Y, -2) {
		t.Errorf("Lerp(a, b, 0.1) = %v, want (1, -2)", got)
	}
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp at t=0 = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); !near(got.X, b.X) || !near(got.Y, b.Y) {
		t.Errorf("Lerp at t=1 = %v, want %v", got, b)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name string
		v    r2.Vec
		want float64
	}{
		{"east", r2.Vec{X: 1}, 0},
		{"south (screen down)", r2.Vec{Y: 1}, math.Pi / 2},
		{"west", r2.Vec{X: -1}, math.Pi},
		{"zero", r2.Vec{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Heading(tt.v); !near(got, tt.want) {
				t.Errorf("Heading(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestFromPolarRoundTrip(t *testing.T) {
	for _, angle := range []float64{0, 0.3, -1.2, math.Pi / 2, 3} {
		v := FromPolar(7, angle)
		if !near(Mag(v), 7) {
			t.Errorf("Mag(FromPolar(7, %v)) = %v", angle, Mag(v))
		}
		if !near(math.Cos(Heading(v)), math.Cos(angle)) || !near(math.Sin(Heading(v)), math.Sin(angle)) {
			t.Errorf("Heading(FromPolar(7, %v)) = %v", angle, Heading(v))
		}
	}
}

func TestSetMag(t *testing.T) {
	v := SetMag(r2.Vec{X: 3, Y: 4}, 10)
	if !near(v.X, 6) || !near(v.Y, 8) {
		t.Errorf("SetMag = %v, want (6, 8)", v)
	}
	if z := SetMag(r2.Vec{}, 5); z != (r2.Vec{}) {
		t.Errorf("SetMag(zero) = %v, want zero", z)
	}
}

func TestRotatePreservesMagnitude(t *testing.T) {
	v := r2.Vec{X: 3, Y: 4}
	r := Rotate(v, 0.1)
	if !near(Mag(r), 5) {
		t.Errorf("Mag after rotate = %v, want 5", Mag(r))
	}
	if !near(Heading(r)-Heading(v), 0.1) {
		t.Errorf("rotation delta = %v, want 0.1", Heading(r)-Heading(v))
	}
}

func TestSafeDist(t *testing.T) {
	p := r2.Vec{X: 5, Y: 5}
	if got := SafeDist(p, p); got != Epsilon {
		t.Errorf("SafeDist of coincident points = %v, want %v", got, Epsilon)
	}
	if got := SafeDist(p, r2.Vec{X: 8, Y: 9}); !near(got, 5) {
		t.Errorf("SafeDist = %v, want 5", got)
	}
}

func TestMapRange(t *testing.T) {
	tests := []struct {
		name                        string
		v, inLo, inHi, outLo, outHi float64
		clamp                       bool
		want                        float64
	}{
		{"midpoint", 0.5, 0.1, 0.9, -0.1, 0.1, true, 0},
		{"low clamp", 0.0, 0.1, 0.9, -0.1, 0.1, true, -0.1},
		{"high clamp", 1.0, 0.1, 0.9, -0.1, 0.1, true, 0.1},
		{"unclamped", 1.0, 0.1, 0.9, -0.1, 0.1, false, 0.125},
		{"inverted output", 100, 0, 200, 50, 0, true, 25},
		{"inverted output clamp", 300, 0, 200, 50, 0, true, 0},
		{"zero width", 3, 0, 0, 0.3, 1, true, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRange(tt.v, tt.inLo, tt.inHi, tt.outLo, tt.outHi, tt.clamp)
			if !near(got, tt.want) {
				t.Errorf("MapRange = %v, want %v", got, tt.want)
			}
		})
	}
}
