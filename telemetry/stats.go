package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population at window end
	Creatures  int `csv:"creatures"`
	Footprints int `csv:"footprints"`

	// Footprint traffic during the window
	Steps        int     `csv:"steps"`
	Pruned       int     `csv:"pruned"`
	StepsPerTick float64 `csv:"steps_per_tick"`

	// Head speed in world units per tick, over every creature and tick
	HeadSpeedMean float64 `csv:"head_speed_mean"`
	HeadSpeedP50  float64 `csv:"head_speed_p50"`
	HeadSpeedP90  float64 `csv:"head_speed_p90"`

	// Mean distance from the follower's head to the cursor
	FollowerDist float64 `csv:"follower_dist"`
}

// Summarize returns the mean, median and 90th percentile of values.
// Returns zeros for an empty slice.
func Summarize(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("creatures", s.Creatures),
		slog.Int("footprints", s.Footprints),
		slog.Int("steps", s.Steps),
		slog.Int("pruned", s.Pruned),
		slog.Float64("steps_per_tick", s.StepsPerTick),
		slog.Float64("head_speed_mean", s.HeadSpeedMean),
		slog.Float64("head_speed_p50", s.HeadSpeedP50),
		slog.Float64("head_speed_p90", s.HeadSpeedP90),
		slog.Float64("follower_dist", s.FollowerDist),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
