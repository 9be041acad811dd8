package silhouette

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"pgregory.net/rapid"

	"github.com/pthm-cable/critters/creature"
	"github.com/pthm-cable/critters/vecmath"
)

// fataler is satisfied by both *testing.T and *rapid.T.
type fataler interface {
	Fatalf(format string, args ...any)
}

func newCreature(t fataler, tail int) *creature.Creature {
	c, err := creature.New(0, creature.Params{
		HeadPos:        r2.Vec{X: 300, Y: 300},
		HeadSize:       40,
		Phase:          1.3,
		TailLength:     tail,
		MaxSizeRatio:   0.8,
		SegmentSpacing: 20,
		TailAmplitude:  100,
		TailWavelength: 8,
		FootReach:      2.5,
		FootAngle:      math.Pi / 8,
	})
	if err != nil {
		t.Fatalf("creature.New: %v", err)
	}
	return c
}

func TestPointCount(t *testing.T) {
	for _, n := range []int{1, 2, 10, 25} {
		o := Build(newCreature(t, n))
		if len(o.Points) != 2*n+8 {
			t.Errorf("n=%d: %d points, want %d", n, len(o.Points), 2*n+8)
		}
		if o.Segments != n {
			t.Errorf("Segments = %d, want %d", o.Segments, n)
		}
		if len(o.TailCap()) != 3 || len(o.HeadCap()) != 3 {
			t.Errorf("cap sizes %d, %d, want 3", len(o.TailCap()), len(o.HeadCap()))
		}
	}
}

func TestOrdering(t *testing.T) {
	c := newCreature(t, 4)
	c.Head.Facing = 0
	for i := range c.Tail {
		c.Tail[i].Facing = 0
	}
	o := Build(c)

	// Facing +x, left is -y and right is +y.
	if got, want := o.Points[0], (r2.Vec{X: 300, Y: 280}); vecmath.Dist(got, want) > 1e-9 {
		t.Errorf("first point = %v, want head left %v", got, want)
	}
	if got, want := o.Points[12], (r2.Vec{X: 300, Y: 320}); vecmath.Dist(got, want) > 1e-9 {
		t.Errorf("point 12 = %v, want head right %v", got, want)
	}
	// Middle tail cap point sits directly behind the last segment.
	last := c.Tail[3]
	if got, want := o.TailCap()[1], (r2.Add(last.Pos, r2.Vec{X: -last.Size / 2})); vecmath.Dist(got, want) > 1e-9 {
		t.Errorf("tail cap = %v, want %v", got, want)
	}
	// Middle head cap point is the nose.
	if got, want := o.HeadCap()[1], (r2.Vec{X: 320, Y: 300}); vecmath.Dist(got, want) > 1e-9 {
		t.Errorf("head cap = %v, want %v", got, want)
	}
}

func TestSidesEquidistant(t *testing.T) {
	c := newCreature(t, 10)
	o := Build(c)

	check := func(k int, pos r2.Vec, size float64) {
		l, r := o.Left(k), o.Right(k)
		if math.Abs(vecmath.Dist(l, pos)-size/2) > 1e-9 || math.Abs(vecmath.Dist(r, pos)-size/2) > 1e-9 {
			t.Errorf("element %d: sides not at half size from centre", k)
		}
		mid := vecmath.Lerp(l, r, 0.5)
		if vecmath.Dist(mid, pos) > 1e-9 {
			t.Errorf("element %d: sides not symmetric about centre", k)
		}
	}
	check(0, c.Head.Pos, c.Head.Size)
	for i, seg := range c.Tail {
		check(i+1, seg.Pos, seg.Size)
	}
}

func TestTriangles(t *testing.T) {
	o := Build(newCreature(t, 10))
	tris := o.Triangles()
	if len(tris) != 2*10+8 {
		t.Fatalf("%d triangles, want %d", len(tris), 2*10+8)
	}
	for i, tri := range tris {
		if tri.Area2() < 0 {
			t.Errorf("triangle %d has negative winding", i)
		}
	}
}

func TestEmptyOutline(t *testing.T) {
	var o Outline
	if tris := o.Triangles(); tris != nil {
		t.Errorf("zero Outline produced %d triangles", len(tris))
	}
}

func TestPropertyOutlinePairing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "n")
		c := newCreature(t, n)
		c.Head.Facing = rapid.Float64Range(-10, 10).Draw(t, "headFacing")
		for i := range c.Tail {
			c.Tail[i].Pos = r2.Vec{
				X: rapid.Float64Range(-1000, 1000).Draw(t, "x"),
				Y: rapid.Float64Range(-1000, 1000).Draw(t, "y"),
			}
			c.Tail[i].Facing = rapid.Float64Range(-10, 10).Draw(t, "facing")
		}

		o := Build(c)
		if len(o.Points) != 2*n+8 {
			t.Fatalf("%d points, want %d", len(o.Points), 2*n+8)
		}
		for i, seg := range c.Tail {
			dl := vecmath.Dist(o.Left(i+1), seg.Pos)
			dr := vecmath.Dist(o.Right(i+1), seg.Pos)
			if math.Abs(dl-dr) > 1e-6 {
				t.Fatalf("segment %d: left %v and right %v distances differ", i, dl, dr)
			}
		}
		for _, tri := range o.Triangles() {
			if tri.Area2() < 0 {
				t.Fatalf("negative winding")
			}
		}
	})
}
