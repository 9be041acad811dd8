package creature

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/footprint"
	"github.com/pthm-cable/critters/noise"
	"github.com/pthm-cable/critters/vecmath"
)

// Locomotor moves creatures one tick at a time.
type Locomotor struct {
	Bounds r2.Box // wanderers outside this box head back to its centre
	Noise  noise.Source

	FollowRate      float64
	Reach           float64 // leg length in segment sizes
	FootAngle       float64
	TurnAmount      float64
	NoisePhaseScale float64
	NoiseTimeScale  float64
	NoiseLow        float64
	NoiseHigh       float64
	PushFromFeet    bool
}

// NewLocomotor builds a Locomotor from config.
func NewLocomotor(cfg config.LocomotionConfig, bounds r2.Box, src noise.Source) *Locomotor {
	return &Locomotor{
		Bounds:          bounds,
		Noise:           src,
		FollowRate:      cfg.FollowRate,
		Reach:           cfg.MaxFootDistMultiplier,
		FootAngle:       cfg.FootAngle,
		TurnAmount:      cfg.TurnAmount,
		NoisePhaseScale: cfg.NoisePhaseScale,
		NoiseTimeScale:  cfg.NoiseTimeScale,
		NoiseLow:        cfg.NoiseLow,
		NoiseHigh:       cfg.NoiseHigh,
		PushFromFeet:    cfg.PushFromFeet,
	}
}

// ComputeTarget returns the point the head should move toward this tick.
// ok is false when a following creature is already within one head size
// of the cursor.
func (l *Locomotor) ComputeTarget(c *Creature, tick int, cursor r2.Vec) (target r2.Vec, ok bool) {
	head := &c.Head
	if c.FollowsTarget {
		delta := r2.Sub(cursor, head.Pos)
		if vecmath.Mag(delta) < head.Size {
			return r2.Vec{}, false
		}
		return r2.Add(head.Pos, vecmath.SetMag(delta, head.Size)), true
	}

	base := head.Facing
	if !l.Bounds.Contains(head.Pos) {
		base = vecmath.Heading(r2.Sub(l.Bounds.Center(), head.Pos))
	}
	offset := vecmath.Rotate(vecmath.FromPolar(head.Size, base), l.Steer(c, tick))
	return r2.Add(head.Pos, offset), true
}

// Steer maps smooth noise onto a small deflection in [-TurnAmount, TurnAmount].
func (l *Locomotor) Steer(c *Creature, tick int) float64 {
	if l.Noise == nil {
		return 0
	}
	n := l.Noise.Sample(c.Phase*l.NoisePhaseScale + float64(tick)/l.NoiseTimeScale)
	return vecmath.MapRange(n, l.NoiseLow, l.NoiseHigh, -l.TurnAmount, l.TurnAmount, true)
}

// Update advances c by one tick: the head moves toward its target, the tail
// follows, and feet that drift too far step and leave footprints in sink.
func (l *Locomotor) Update(c *Creature, tick int, cursor r2.Vec, sink footprint.Sink) {
	if target, ok := l.ComputeTarget(c, tick, cursor); ok {
		l.MoveHead(c, target)
	}
	l.FollowChain(c, sink)
}

// MoveHead eases the head toward target and faces it.
func (l *Locomotor) MoveHead(c *Creature, target r2.Vec) {
	c.Head.Pos = vecmath.Lerp(c.Head.Pos, target, l.FollowRate)
	c.Head.Facing = vecmath.Heading(r2.Sub(target, c.Head.Pos))
}

// FollowChain walks the tail, pulling each segment toward its leader once
// it lags by more than the head size, and updates every segment's feet.
func (l *Locomotor) FollowChain(c *Creature, sink footprint.Sink) {
	leader := c.Head.Pos
	for i := range c.Tail {
		seg := &c.Tail[i]
		toward := r2.Sub(leader, seg.Pos)
		if vecmath.Mag(toward) > c.Head.Size {
			seg.Pos = vecmath.Lerp(seg.Pos, leader, l.FollowRate)
		}
		seg.Facing = vecmath.Heading(toward)

		l.updateFeet(c, i, sink)

		leader = seg.Pos
	}
}

// IdealFootPos is where a foot on seg would rest if planted right now.
func IdealFootPos(seg *Segment, side Side, reach, angle float64) r2.Vec {
	return r2.Add(seg.Pos, vecmath.FromPolar(seg.Size*reach, seg.Facing+side.Sign()*angle))
}

func (l *Locomotor) updateFeet(c *Creature, i int, sink footprint.Sink) {
	seg := &c.Tail[i]
	maxDist := seg.Size * l.Reach
	for j := range seg.Feet {
		foot := &seg.Feet[j]
		if l.PlaceFoot(seg, foot, maxDist) && sink != nil {
			sink.Add(footprint.Footprint{
				Pos:    foot.Pos,
				Size:   foot.Size,
				Facing: foot.Facing,
			})
		}
		foot.Facing = seg.Facing
		if l.PushFromFeet {
			PushFromFoot(c, i, foot)
		}
	}
}

// PlaceFoot snaps foot to its ideal position when it has drifted more than
// maxDist away and reports whether it stepped. Facing is left to the caller.
func (l *Locomotor) PlaceFoot(seg *Segment, foot *Foot, maxDist float64) bool {
	ideal := IdealFootPos(seg, foot.Side, l.Reach, l.FootAngle)
	if vecmath.Dist(foot.Pos, ideal) > maxDist {
		foot.Pos = ideal
		return true
	}
	return false
}

// PushFromFoot shoves every other segment of c away from foot, harder the
// closer that segment is to the foot's own segment.
func PushFromFoot(c *Creature, segIndex int, foot *Foot) {
	seg := &c.Tail[segIndex]
	for i := range c.Tail {
		if i == segIndex {
			continue
		}
		other := &c.Tail[i]
		d := vecmath.SafeDist(other.Pos, seg.Pos)
		push := vecmath.SetMag(r2.Sub(other.Pos, foot.Pos), seg.Size/d)
		other.Pos = r2.Add(other.Pos, push)
	}
}
