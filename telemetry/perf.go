package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step.
const (
	PhaseLocomotion = "locomotion"
	PhaseAging      = "aging"
	PhasePruning    = "pruning"
	PhaseTelemetry  = "telemetry"
)

const numPhases = 4

// Phases lists every phase in tick order.
var Phases = [numPhases]string{PhaseLocomotion, PhaseAging, PhasePruning, PhaseTelemetry}

func phaseIndex(name string) int {
	for i, p := range Phases {
		if p == name {
			return i
		}
	}
	return -1
}

// perfSample is the timing of one tick, in microseconds.
type perfSample struct {
	tick   float64
	phases [numPhases]float64
}

// PerfCollector times simulation phases over a rolling window of ticks.
// Unknown phase names still close the previous phase but are not recorded.
type PerfCollector struct {
	ring  []perfSample
	next  int
	count int

	cur        perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into Phases, -1 when none is open

	lastFrame time.Time
	frame     time.Duration

	now func() time.Time
}

// NewPerfCollector averages over windowSize ticks (60 when windowSize < 1).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]perfSample, windowSize), phase: -1, now: time.Now}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.cur = perfSample{}
	p.phase = -1
}

// StartPhase closes the open phase, if any, and opens the named one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseIndex(phase)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.cur.phases[p.phase] += micros(now.Sub(p.phaseStart))
	}
}

// EndTick closes the last phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.phase = -1
	p.cur.tick = micros(now.Sub(p.tickStart))

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame measures the time since the previous call.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P90TickDuration time.Duration

	// Keyed by phase name. Pct is the share of the average tick.
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Graphics mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	ticks := make([]float64, p.count)
	var phases [numPhases][]float64
	for i := range phases {
		phases[i] = make([]float64, p.count)
	}
	for i, sample := range p.ring[:p.count] {
		ticks[i] = sample.tick
		for j := range phases {
			phases[j][i] = sample.phases[j]
		}
	}

	avg := stat.Mean(ticks, nil)
	s.AvgTickDuration = fromMicros(avg)
	s.MinTickDuration = fromMicros(floats.Min(ticks))
	s.MaxTickDuration = fromMicros(floats.Max(ticks))
	slices.Sort(ticks)
	s.P90TickDuration = fromMicros(stat.Quantile(0.9, stat.Empirical, ticks, nil))
	if avg > 0 {
		s.TicksPerSecond = 1e6 / avg
	}

	for j, name := range Phases {
		if floats.Sum(phases[j]) == 0 {
			continue
		}
		mean := stat.Mean(phases[j], nil)
		s.PhaseAvg[name] = fromMicros(mean)
		if avg > 0 {
			s.PhasePct[name] = mean / avg * 100
		}
	}
	return s
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

func fromMicros(us float64) time.Duration {
	return time.Duration(us * float64(time.Microsecond))
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p90_tick_us", s.P90TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("p90_tick_us", s.P90TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd     int     `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	P90TickUS     int64   `csv:"p90_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	LocomotionPct float64 `csv:"locomotion_pct"`
	AgingPct      float64 `csv:"aging_pct"`
	PruningPct    float64 `csv:"pruning_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s into a perf.csv row for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		P90TickUS:     s.P90TickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		LocomotionPct: s.PhasePct[PhaseLocomotion],
		AgingPct:      s.PhasePct[PhaseAging],
		PruningPct:    s.PhasePct[PhasePruning],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
