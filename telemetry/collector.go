// Package telemetry aggregates per-window simulation statistics and tick
// timings, and writes them out as CSV.
package telemetry

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/critters/vecmath"
)

// HeadSample is one creature's head position at the end of a tick.
type HeadSample struct {
	ID       int
	Pos      r2.Vec
	Follower bool
}

// Collector accumulates tick records within fixed windows and produces
// WindowStats.
type Collector struct {
	windowTicks int

	// Current window tracking
	windowStart int
	ticks       int
	steps       int
	pruned      int
	speeds      []float64
	followDists []float64

	// Head positions from the previous tick, keyed by creature ID
	lastHeads map[int]r2.Vec
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		lastHeads:   make(map[int]r2.Vec),
	}
}

// Record adds one tick's footprint traffic and head positions.
func (c *Collector) Record(steps, pruned int, heads []HeadSample, cursor r2.Vec) {
	c.ticks++
	c.steps += steps
	c.pruned += pruned

	for _, h := range heads {
		if prev, ok := c.lastHeads[h.ID]; ok {
			c.speeds = append(c.speeds, vecmath.Dist(prev, h.Pos))
		}
		c.lastHeads[h.ID] = h.Pos
		if h.Follower {
			c.followDists = append(c.followDists, vecmath.Dist(h.Pos, cursor))
		}
	}
}

// Forget drops remembered head positions, so the first tick after a
// regeneration does not register as a jump.
func (c *Collector) Forget() {
	clear(c.lastHeads)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStart >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// creatures and footprints are the live counts at currentTick.
func (c *Collector) Flush(currentTick, creatures, footprints int) WindowStats {
	mean, p50, p90 := Summarize(c.speeds)

	var followerDist float64
	if len(c.followDists) > 0 {
		followerDist = stat.Mean(c.followDists, nil)
	}
	var stepsPerTick float64
	if c.ticks > 0 {
		stepsPerTick = float64(c.steps) / float64(c.ticks)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   currentTick,
		Creatures:       creatures,
		Footprints:      footprints,
		Steps:           c.steps,
		Pruned:          c.pruned,
		StepsPerTick:    stepsPerTick,
		HeadSpeedMean:   mean,
		HeadSpeedP50:    p50,
		HeadSpeedP90:    p90,
		FollowerDist:    followerDist,
	}

	c.windowStart = currentTick
	c.ticks = 0
	c.steps = 0
	c.pruned = 0
	c.speeds = c.speeds[:0]
	c.followDists = c.followDists[:0]

	return stats
}
