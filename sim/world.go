// Package sim owns the creature population and footprint ledger and
// advances them one tick at a time.
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/creature"
	"github.com/pthm-cable/critters/footprint"
	"github.com/pthm-cable/critters/noise"
	"github.com/pthm-cable/critters/telemetry"
)

// ErrNoCreatures is returned by Regenerate for a count below one.
var ErrNoCreatures = errors.New("sim: need at least one creature")

// PhaseTimer is told when each phase of Advance begins.
type PhaseTimer interface {
	StartPhase(phase string)
}

// TickReport summarises what happened during one Advance.
type TickReport struct {
	Steps  int // footprints emitted
	Pruned int // footprints expired
}

// Snapshot is a read-only copy of the world's state.
type Snapshot struct {
	Creatures  []creature.Creature
	Footprints []footprint.Footprint
}

// World holds all mutable simulation state. It is not safe for concurrent use.
type World struct {
	cfg       *config.Config
	rng       *rand.Rand
	locomotor *creature.Locomotor
	ledger    *footprint.Ledger
	creatures []*creature.Creature
	timer     PhaseTimer
}

// New creates an empty world. Call Regenerate to populate it.
func New(cfg *config.Config, rng *rand.Rand, src noise.Source) *World {
	return &World{
		cfg:       cfg,
		rng:       rng,
		locomotor: creature.NewLocomotor(cfg.Locomotion, Bounds(cfg), src),
		ledger:    footprint.NewLedger(),
	}
}

// Bounds returns the box wanderers are kept inside.
func Bounds(cfg *config.Config) r2.Box {
	return r2.Box{Max: r2.Vec{X: cfg.Derived.WorldW, Y: cfg.Derived.WorldH}}
}

// SetPhaseTimer installs t to receive phase boundaries. nil disables timing.
func (w *World) SetPhaseTimer(t PhaseTimer) {
	w.timer = t
}

// Regenerate discards every creature and footprint and creates count new
// creatures. The last one follows the cursor, the rest wander.
func (w *World) Regenerate(count int) error {
	if count < 1 {
		return fmt.Errorf("regenerate %d: %w", count, ErrNoCreatures)
	}

	creatures := make([]*creature.Creature, 0, count)
	for i := 0; i < count; i++ {
		c, err := creature.New(i, w.params(i == count-1))
		if err != nil {
			return fmt.Errorf("creating creature %d: %w", i, err)
		}
		creatures = append(creatures, c)
	}

	w.ledger.Clear()
	w.creatures = creatures
	return nil
}

func (w *World) params(follows bool) creature.Params {
	pop := w.cfg.Population
	return creature.Params{
		HeadPos: r2.Vec{
			X: w.rng.Float64() * w.cfg.Derived.WorldW,
			Y: w.rng.Float64() * w.cfg.Derived.WorldH,
		},
		HeadSize:       w.headSize(),
		Phase:          w.rng.Float64() * 2 * math.Pi,
		TailLength:     pop.TailLength,
		MaxSizeRatio:   pop.MaxSizeRatio,
		FollowsTarget:  follows,
		Colour:         creature.RandomColour(w.rng),
		SegmentSpacing: pop.SegmentSpacing,
		TailAmplitude:  pop.TailAmplitude,
		TailWavelength: pop.TailWavelength,
		FootReach:      w.cfg.Locomotion.MaxFootDistMultiplier,
		FootAngle:      w.cfg.Locomotion.FootAngle,
	}
}

// headSize draws from the configured sizes, with a rare outsized creature.
func (w *World) headSize() float64 {
	pop := w.cfg.Population
	if w.rng.Float64() < pop.OutsizedChance {
		return pop.OutsizedSize
	}
	return pop.HeadSizes[w.rng.Intn(len(pop.HeadSizes))]
}

// Advance moves every creature one tick in order, ages all footprints, and
// expires old ones every prune interval.
func (w *World) Advance(tick int, cursor r2.Vec) TickReport {
	var report TickReport

	w.startPhase(telemetry.PhaseLocomotion)
	before := w.ledger.Len()
	for _, c := range w.creatures {
		w.locomotor.Update(c, tick, cursor, w.ledger)
	}
	report.Steps = w.ledger.Len() - before

	w.startPhase(telemetry.PhaseAging)
	w.ledger.AgeAll()

	fp := w.cfg.Footprints
	if fp.PruneInterval > 0 && tick%fp.PruneInterval == 0 {
		w.startPhase(telemetry.PhasePruning)
		report.Pruned = w.ledger.Prune(fp.MaxAge)
	}
	return report
}

func (w *World) startPhase(phase string) {
	if w.timer != nil {
		w.timer.StartPhase(phase)
	}
}

// Creatures returns the live creatures in update order. The follower, if
// any, is last. Callers must not modify them.
func (w *World) Creatures() []*creature.Creature {
	return w.creatures
}

// Follower returns the cursor-following creature, or nil.
func (w *World) Follower() *creature.Creature {
	for i := len(w.creatures) - 1; i >= 0; i-- {
		if w.creatures[i].FollowsTarget {
			return w.creatures[i]
		}
	}
	return nil
}

// Ledger returns the footprint ledger.
func (w *World) Ledger() *footprint.Ledger {
	return w.ledger
}

// HeadSamples returns every head position for telemetry.
func (w *World) HeadSamples() []telemetry.HeadSample {
	out := make([]telemetry.HeadSample, len(w.creatures))
	for i, c := range w.creatures {
		out[i] = telemetry.HeadSample{ID: c.ID, Pos: c.Head.Pos, Follower: c.FollowsTarget}
	}
	return out
}

// Snapshot returns deep copies of the current creatures and footprints.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Creatures:  make([]creature.Creature, len(w.creatures)),
		Footprints: w.ledger.Footprints(),
	}
	for i, c := range w.creatures {
		s.Creatures[i] = c.Clone()
	}
	return s
}
