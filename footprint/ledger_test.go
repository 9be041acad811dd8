package footprint

import (
	"sort"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"pgregory.net/rapid"
)

func mark(x float64) Footprint {
	return Footprint{Pos: r2.Vec{X: x, Y: -x}, Size: 5, Facing: 0.25}
}

func TestAddForcesAgeZero(t *testing.T) {
	l := NewLedger()
	f := mark(1)
	f.Age = 99
	l.Add(f)

	got := l.Footprints()
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Age != 0 {
		t.Errorf("age = %d, want 0", got[0].Age)
	}
	if got[0].Pos != f.Pos || got[0].Size != f.Size || got[0].Facing != f.Facing {
		t.Errorf("footprint = %+v, want geometry of %+v", got[0], f)
	}
}

func TestAgeAllIncrementsEveryFootprint(t *testing.T) {
	l := NewLedger()
	l.Add(mark(1))
	l.AgeAll()
	l.AgeAll()
	l.Add(mark(2))
	l.AgeAll()

	ages := map[float64]int{}
	l.Each(func(f Footprint) { ages[f.Pos.X] = f.Age })

	if ages[1] != 3 || ages[2] != 1 {
		t.Errorf("ages = %v, want {1:3, 2:1}", ages)
	}
}

func TestPruneBoundary(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 5; i++ {
		l.Add(mark(float64(i)))
		l.AgeAll()
	}
	// Ages are now 5, 4, 3, 2, 1 for x = 0..4
	removed := l.Prune(3)
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
	l.Each(func(f Footprint) {
		if f.Age >= 3 {
			t.Errorf("footprint with age %d survived prune(3)", f.Age)
		}
	})
}

func TestClear(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 10; i++ {
		l.Add(mark(float64(i)))
	}
	l.Clear()
	if l.Len() != 0 || len(l.Footprints()) != 0 {
		t.Errorf("ledger not empty after Clear: Len=%d", l.Len())
	}
	l.Add(mark(1))
	if l.Len() != 1 {
		t.Errorf("Len after re-add = %d, want 1", l.Len())
	}
}

func TestAlpha(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{0, 50},
		{100, 25},
		{200, 0},
		{500, 0},
	}
	for _, tt := range tests {
		if got := Alpha(tt.age, 200); got != tt.want {
			t.Errorf("Alpha(%d, 200) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

// ages returns every live age, sorted.
func ages(l *Ledger) []int {
	var out []int
	l.Each(func(f Footprint) { out = append(out, f.Age) })
	sort.Ints(out)
	return out
}

func TestPropertyAgeAllAddsOne(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewLedger()
		ops := rapid.SliceOfN(rapid.Bool(), 1, 200).Draw(t, "ops")
		for i, add := range ops {
			if add {
				l.Add(mark(float64(i)))
			} else {
				l.AgeAll()
			}
		}

		before := map[float64]int{}
		l.Each(func(f Footprint) { before[f.Pos.X] = f.Age })
		l.AgeAll()
		l.Each(func(f Footprint) {
			if f.Age != before[f.Pos.X]+1 {
				t.Fatalf("age %d after AgeAll, was %d", f.Age, before[f.Pos.X])
			}
		})
	})
}

func TestPropertyPruneRemovesExactlyExpired(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewLedger()
		n := rapid.IntRange(0, 100).Draw(t, "n")
		for i := 0; i < n; i++ {
			l.Add(mark(float64(i)))
			steps := rapid.IntRange(0, 3).Draw(t, "steps")
			for s := 0; s < steps; s++ {
				l.AgeAll()
			}
		}
		maxAge := rapid.IntRange(1, 150).Draw(t, "maxAge")

		var keep []int
		expired := 0
		for _, a := range ages(l) {
			if a < maxAge {
				keep = append(keep, a)
			} else {
				expired++
			}
		}

		removed := l.Prune(maxAge)
		if removed != expired {
			t.Fatalf("removed %d, want %d", removed, expired)
		}
		after := ages(l)
		if len(after) != len(keep) {
			t.Fatalf("kept %d, want %d", len(after), len(keep))
		}
		for i := range after {
			if after[i] != keep[i] {
				t.Fatalf("surviving ages %v, want %v", after, keep)
			}
		}
		if l.Len() != len(keep) {
			t.Fatalf("Len = %d, want %d", l.Len(), len(keep))
		}
	})
}
