// Package creature holds the creature data model and its procedural
// locomotion: steering, follow-the-leader chain motion and foot placement.
package creature

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/vecmath"
)

// Errors returned by New for malformed parameters.
var (
	ErrInvalidSize = errors.New("creature: sizes must be positive")
	ErrEmptyTail   = errors.New("creature: tail needs at least one segment")
)

// Side distinguishes the two feet of a segment.
type Side int8

const (
	Left  Side = -1
	Right Side = 1
)

// Sign returns -1 for Left and +1 for Right.
func (s Side) Sign() float64 {
	return float64(s)
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Head leads the creature.
type Head struct {
	Pos    r2.Vec
	Size   float64
	Facing float64
}

// Foot is planted until its segment drifts too far, then snaps forward.
type Foot struct {
	Pos    r2.Vec
	Size   float64
	Facing float64
	Side   Side
}

// Segment is one link of the tail chain.
type Segment struct {
	Pos    r2.Vec
	Size   float64
	Facing float64
	Feet   []Foot // empty or exactly one Left and one Right
}

// Creature is a head followed by a fixed-length chain of segments.
type Creature struct {
	ID            int
	Phase         float64 // 0..2π, desynchronises wandering and tail shape
	FollowsTarget bool
	Head          Head
	Tail          []Segment
	Colour        color.RGBA
}

// Params describes a creature to build.
type Params struct {
	HeadPos       r2.Vec
	HeadSize      float64
	Phase         float64
	TailLength    int
	MaxSizeRatio  float64 // widest segment relative to the head
	FollowsTarget bool
	Colour        color.RGBA

	// Initial tail layout: segment i sits at
	// HeadPos + (i*SegmentSpacing, TailAmplitude*sin(Phase + i/TailWavelength)).
	SegmentSpacing float64
	TailAmplitude  float64
	TailWavelength float64

	// Feet start at their ideal positions, which depend on leg geometry.
	FootReach float64
	FootAngle float64
}

// HasFeet reports whether the segment at chain index i carries feet.
func HasFeet(i int) bool {
	return (i-1)%4 == 0
}

// Taper returns the size of segment i in a chain of n, peaking behind the
// head and narrowing to the tip.
func Taper(i, n int, maxSize float64) float64 {
	t := math.Pi * vecmath.MapRange(float64(i), 0, float64(n-1), 0.3, 1, true)
	return vecmath.MapRange(math.Sin(t), 0, 1, 0.3, 1, true) * maxSize
}

// New builds a creature from p. Sizes, the leg reach and the tail
// wavelength must be positive and finite.
func New(id int, p Params) (*Creature, error) {
	if !positive(p.HeadSize) {
		return nil, fmt.Errorf("head size %v: %w", p.HeadSize, ErrInvalidSize)
	}
	if !positive(p.MaxSizeRatio) {
		return nil, fmt.Errorf("max size ratio %v: %w", p.MaxSizeRatio, ErrInvalidSize)
	}
	if !positive(p.FootReach) {
		return nil, fmt.Errorf("foot reach %v: %w", p.FootReach, ErrInvalidSize)
	}
	if !positive(p.TailWavelength) {
		return nil, fmt.Errorf("tail wavelength %v: %w", p.TailWavelength, ErrInvalidSize)
	}
	for _, v := range []float64{p.SegmentSpacing, p.TailAmplitude, p.FootAngle, p.Phase} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("layout value %v: %w", v, ErrInvalidSize)
		}
	}
	if p.TailLength < 1 {
		return nil, fmt.Errorf("tail length %d: %w", p.TailLength, ErrEmptyTail)
	}

	c := &Creature{
		ID:            id,
		Phase:         p.Phase,
		FollowsTarget: p.FollowsTarget,
		Head:          Head{Pos: p.HeadPos, Size: p.HeadSize},
		Tail:          make([]Segment, p.TailLength),
		Colour:        p.Colour,
	}

	maxSize := p.HeadSize * p.MaxSizeRatio
	for i := range c.Tail {
		offset := r2.Vec{
			X: float64(i) * p.SegmentSpacing,
			Y: p.TailAmplitude * math.Sin(p.Phase+float64(i)/p.TailWavelength),
		}
		seg := &c.Tail[i]
		seg.Pos = r2.Add(p.HeadPos, offset)
		seg.Size = Taper(i, p.TailLength, maxSize)
		if HasFeet(i) {
			seg.Feet = []Foot{
				newFoot(seg, Left, p.FootReach, p.FootAngle),
				newFoot(seg, Right, p.FootReach, p.FootAngle),
			}
		}
	}
	return c, nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func newFoot(seg *Segment, side Side, reach, angle float64) Foot {
	return Foot{
		Pos:    IdealFootPos(seg, side, reach, angle),
		Size:   seg.Size / 2,
		Facing: seg.Facing,
		Side:   side,
	}
}

// Clone returns a deep copy of c.
func (c *Creature) Clone() Creature {
	out := *c
	out.Tail = make([]Segment, len(c.Tail))
	for i, seg := range c.Tail {
		out.Tail[i] = seg
		if seg.Feet != nil {
			out.Tail[i].Feet = append([]Foot(nil), seg.Feet...)
		}
	}
	return out
}

// RandomColour picks a bright, saturated colour.
func RandomColour(rng *rand.Rand) color.RGBA {
	h := rng.Float64() * 360
	s := 0.6 + rng.Float64()*0.4
	r, g, b := colorful.Hsv(h, s, 1).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
