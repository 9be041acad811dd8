package noise

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	for _, kind := range []string{"", KindSimplex, KindPerlin} {
		if _, err := New(kind, 1); err != nil {
			t.Errorf("New(%q) error: %v", kind, err)
		}
	}
	if _, err := New("value", 1); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestSourcesInUnitRange(t *testing.T) {
	sources := map[string]Source{
		"simplex": NewSimplex(7),
		"perlin":  NewPerlin(7),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 2000; i++ {
				x := float64(i)*0.37 - 300
				v := src.Sample(x)
				if v < 0 || v > 1 || math.IsNaN(v) {
					t.Fatalf("Sample(%v) = %v, out of [0, 1]", x, v)
				}
			}
		})
	}
}

func TestSourcesDeterministic(t *testing.T) {
	a, b := NewSimplex(42), NewSimplex(42)
	p, q := NewPerlin(42), NewPerlin(42)
	for i := 0; i < 100; i++ {
		x := float64(i) * 1.3
		if a.Sample(x) != b.Sample(x) {
			t.Fatalf("simplex not deterministic at %v", x)
		}
		if p.Sample(x) != q.Sample(x) {
			t.Fatalf("perlin not deterministic at %v", x)
		}
	}
}

func TestSourcesSmooth(t *testing.T) {
	// Steering samples advance by 1/50 per tick; consecutive samples must not jump.
	sources := map[string]Source{
		"simplex": NewSimplex(3),
		"perlin":  NewPerlin(3),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			prev := src.Sample(0)
			for i := 1; i < 5000; i++ {
				v := src.Sample(float64(i) / 50)
				if math.Abs(v-prev) > 0.1 {
					t.Fatalf("jump of %v at step %d", math.Abs(v-prev), i)
				}
				prev = v
			}
		})
	}
}

func TestPerlinVaries(t *testing.T) {
	p := NewPerlin(11)
	lo, hi := 1.0, 0.0
	for i := 0; i < 1000; i++ {
		v := p.Sample(float64(i) * 0.13)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 0.2 {
		t.Errorf("perlin range too narrow: [%v, %v]", lo, hi)
	}
}
