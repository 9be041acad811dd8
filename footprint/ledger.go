// Package footprint stores the marks left by planted feet and expires them.
package footprint

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/vecmath"
)

// Footprint is a read-only view of a single mark.
type Footprint struct {
	Pos    r2.Vec
	Size   float64
	Facing float64
	Age    int
}

// Sink receives footprints emitted by foot placement.
type Sink interface {
	Add(f Footprint)
}

// Ledger owns every live footprint. Each footprint is an ECS entity so that
// aging and expiry are plain archetype iterations.
type Ledger struct {
	world *ecs.World

	mapper   *ecs.Map3[components.Position, components.Rotation, components.Imprint]
	filter   *ecs.Filter3[components.Position, components.Rotation, components.Imprint]
	imprints *ecs.Filter1[components.Imprint]

	count   int
	scratch []ecs.Entity
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	world := ecs.NewWorld()
	return &Ledger{
		world:    world,
		mapper:   ecs.NewMap3[components.Position, components.Rotation, components.Imprint](world),
		filter:   ecs.NewFilter3[components.Position, components.Rotation, components.Imprint](world),
		imprints: ecs.NewFilter1[components.Imprint](world),
	}
}

// Add records a new footprint. Its age always starts at 0.
func (l *Ledger) Add(f Footprint) {
	pos := components.Position{X: f.Pos.X, Y: f.Pos.Y}
	rot := components.Rotation{Heading: f.Facing}
	imp := components.Imprint{Size: f.Size}
	l.mapper.NewEntity(&pos, &rot, &imp)
	l.count++
}

// AgeAll advances every footprint's age by one tick.
func (l *Ledger) AgeAll() {
	query := l.imprints.Query()
	for query.Next() {
		imp := query.Get()
		imp.Age++
	}
}

// Prune removes every footprint with age >= maxAge and returns how many
// were removed.
func (l *Ledger) Prune(maxAge int) int {
	// Collect first; entities cannot be removed while a query is open.
	l.scratch = l.scratch[:0]
	query := l.imprints.Query()
	for query.Next() {
		if query.Get().Age >= maxAge {
			l.scratch = append(l.scratch, query.Entity())
		}
	}
	for _, e := range l.scratch {
		l.world.RemoveEntity(e)
	}
	l.count -= len(l.scratch)
	return len(l.scratch)
}

// Clear removes every footprint.
func (l *Ledger) Clear() {
	l.scratch = l.scratch[:0]
	query := l.imprints.Query()
	for query.Next() {
		l.scratch = append(l.scratch, query.Entity())
	}
	for _, e := range l.scratch {
		l.world.RemoveEntity(e)
	}
	l.count = 0
}

// Len returns the number of live footprints.
func (l *Ledger) Len() int {
	return l.count
}

// Each calls fn for every live footprint. fn must not add or remove
// footprints.
func (l *Ledger) Each(fn func(f Footprint)) {
	query := l.filter.Query()
	for query.Next() {
		pos, rot, imp := query.Get()
		fn(Footprint{
			Pos:    r2.Vec{X: pos.X, Y: pos.Y},
			Size:   imp.Size,
			Facing: rot.Heading,
			Age:    imp.Age,
		})
	}
}

// Footprints returns a copy of every live footprint.
func (l *Ledger) Footprints() []Footprint {
	out := make([]Footprint, 0, l.count)
	l.Each(func(f Footprint) {
		out = append(out, f)
	})
	return out
}

// Alpha returns the render opacity (0..50 of 255) of a footprint of the
// given age, fading linearly to zero at maxAge.
func Alpha(age, maxAge int) float64 {
	return vecmath.MapRange(float64(age), 0, float64(maxAge), 50, 0, true)
}
