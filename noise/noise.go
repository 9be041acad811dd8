// Package noise provides seedable smooth noise sources used to steer
// wandering creatures. All sources return values in [0, 1].
package noise

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"
)

// Source samples 1D coherent noise. Nearby inputs give nearby outputs.
type Source interface {
	Sample(x float64) float64
}

// Kinds accepted by New.
const (
	KindSimplex = "simplex"
	KindPerlin  = "perlin"
)

// New returns the noise source named by kind.
func New(kind string, seed int64) (Source, error) {
	switch kind {
	case "", KindSimplex:
		return NewSimplex(seed), nil
	case KindPerlin:
		return NewPerlin(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", kind)
	}
}

// Simplex wraps normalized OpenSimplex noise.
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex creates an OpenSimplex source for the given seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

// Sample returns noise at x on a fixed row of the 2D field.
func (s *Simplex) Sample(x float64) float64 {
	return clamp01(s.n.Eval2(x, 0))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
