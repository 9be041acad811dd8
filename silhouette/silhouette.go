// Package silhouette builds the closed outline polygon of a creature used by
// the continuous rendering style.
package silhouette

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/creature"
	"github.com/pthm-cable/critters/vecmath"
)

// capAngles are the offsets of the three rounding points on each end cap.
var capAngles = [3]float64{math.Pi / 8, 0, -math.Pi / 8}

// Outline is a closed polygon around a creature with n tail segments.
//
// Points are ordered: head left, segment lefts 0..n-1, three tail cap points,
// segment rights n-1..0, head right, three head cap points. The polygon is
// implicitly closed from the last point back to the first.
type Outline struct {
	Points   []r2.Vec
	Segments int

	// Element centres, index 0 is the head. Used to fan-fill the caps.
	centres []r2.Vec
}

// Build computes the outline for c's current pose.
func Build(c *creature.Creature) Outline {
	n := len(c.Tail)
	o := Outline{
		Points:   make([]r2.Vec, 2*n+8),
		Segments: n,
		centres:  make([]r2.Vec, n+1),
	}

	o.centres[0] = c.Head.Pos
	left, right := sides(c.Head.Pos, c.Head.Size, c.Head.Facing)
	o.Points[0] = left
	o.Points[o.rightIndex(0)] = right

	for i, seg := range c.Tail {
		k := i + 1
		o.centres[k] = seg.Pos
		left, right := sides(seg.Pos, seg.Size, seg.Facing)
		o.Points[k] = left
		o.Points[o.rightIndex(k)] = right
	}

	// Tail cap points face backwards from the last segment. A creature
	// always has at least one segment, but fall back to the head anyway.
	end := creature.Segment{Pos: c.Head.Pos, Size: c.Head.Size, Facing: c.Head.Facing}
	if n > 0 {
		end = c.Tail[n-1]
	}
	for j, a := range capAngles {
		o.Points[n+1+j] = r2.Add(end.Pos, vecmath.FromPolar(end.Size/2, math.Pi+end.Facing+a))
		o.Points[2*n+5+j] = r2.Add(c.Head.Pos, vecmath.FromPolar(c.Head.Size/2, c.Head.Facing+a))
	}
	return o
}

// sides returns the points half a size to the left and right of pos.
func sides(pos r2.Vec, size, facing float64) (left, right r2.Vec) {
	left = r2.Add(pos, vecmath.FromPolar(size/2, facing-math.Pi/2))
	right = r2.Add(pos, vecmath.FromPolar(size/2, facing+math.Pi/2))
	return left, right
}

func (o Outline) rightIndex(k int) int {
	return 2*o.Segments + 4 - k
}

// Left returns the left point of element k, where k = 0 is the head and
// k = 1..Segments are tail segments.
func (o Outline) Left(k int) r2.Vec {
	return o.Points[k]
}

// Right returns the right point of element k.
func (o Outline) Right(k int) r2.Vec {
	return o.Points[o.rightIndex(k)]
}

// TailCap returns the three rounding points behind the last segment.
func (o Outline) TailCap() []r2.Vec {
	return o.Points[o.Segments+1 : o.Segments+4]
}

// HeadCap returns the three rounding points in front of the head.
func (o Outline) HeadCap() []r2.Vec {
	return o.Points[2*o.Segments+5:]
}

// Triangle is three polygon vertices.
type Triangle [3]r2.Vec

// Area2 is twice the signed area: positive when the vertices run
// counter-clockwise in a y-up frame.
func (t Triangle) Area2() float64 {
	return r2.Cross(r2.Sub(t[1], t[0]), r2.Sub(t[2], t[0]))
}

// Triangles splits the outline into a quad strip along the body plus a fan
// over each end cap. Every triangle has non-negative Area2, so renderers
// that need a fixed winding can swap two vertices uniformly.
func (o Outline) Triangles() []Triangle {
	if len(o.Points) == 0 {
		return nil
	}
	n := o.Segments
	tris := make([]Triangle, 0, 2*n+8)
	for k := 0; k < n; k++ {
		tris = append(tris,
			wind(Triangle{o.Left(k), o.Left(k + 1), o.Right(k + 1)}),
			wind(Triangle{o.Left(k), o.Right(k + 1), o.Right(k)}),
		)
	}

	tail := o.centres[n]
	rim := []r2.Vec{o.Left(n)}
	rim = append(rim, o.TailCap()...)
	rim = append(rim, o.Right(n))
	tris = appendFan(tris, tail, rim)

	rim = append(rim[:0], o.Right(0))
	rim = append(rim, o.HeadCap()...)
	rim = append(rim, o.Left(0))
	return appendFan(tris, o.centres[0], rim)
}

func appendFan(tris []Triangle, centre r2.Vec, rim []r2.Vec) []Triangle {
	for i := 0; i+1 < len(rim); i++ {
		tris = append(tris, wind(Triangle{centre, rim[i], rim[i+1]}))
	}
	return tris
}

func wind(t Triangle) Triangle {
	if t.Area2() < 0 {
		t[1], t[2] = t[2], t[1]
	}
	return t
}
