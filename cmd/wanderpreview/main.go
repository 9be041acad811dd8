// Wander preview tool - traces one wandering creature with live steering sliders.
//
// Usage: go run ./cmd/wanderpreview
package main

import (
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/creature"
	"github.com/pthm-cable/critters/footprint"
	"github.com/pthm-cable/critters/noise"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 560
	plotHeight   = 110
	panelWidth   = windowWidth - previewSize - 30
	traceTicks   = 3000
)

// Noise window slider ranges. They do not overlap, so noise_high always
// exceeds noise_low.
const (
	noiseLowMin, noiseLowMax   = 0.0, 0.49
	noiseHighMin, noiseHighMax = 0.51, 1.0
)

// WanderParams are the tunable steering values.
type WanderParams struct {
	TurnAmount     float32
	NoiseTimeScale float32
	NoiseLow       float32
	NoiseHigh      float32
	FollowRate     float32
	HeadSize       float32
	Seed           int64
	Perlin         bool
}

func defaultParams(cfg *config.Config) WanderParams {
	l := cfg.Locomotion
	return WanderParams{
		TurnAmount:     float32(l.TurnAmount),
		NoiseTimeScale: float32(l.NoiseTimeScale),
		NoiseLow:       float32(l.NoiseLow),
		NoiseHigh:      float32(l.NoiseHigh),
		FollowRate:     float32(l.FollowRate),
		HeadSize:       30,
		Seed:           12345,
		Perlin:         cfg.Noise.Kind == noise.KindPerlin,
	}
}

// trace is the result of running one creature for traceTicks.
type trace struct {
	path       []r2.Vec
	steering   []float64
	footprints []footprint.Footprint
	exits      int
}

// collector keeps every footprint emitted during a trace.
type collector struct {
	prints []footprint.Footprint
}

func (c *collector) Add(f footprint.Footprint) { c.prints = append(c.prints, f) }

func run(cfg *config.Config, p WanderParams) (trace, error) {
	kind := noise.KindSimplex
	if p.Perlin {
		kind = noise.KindPerlin
	}
	src, err := noise.New(kind, p.Seed)
	if err != nil {
		return trace{}, err
	}

	loco := locomotion(cfg, p)
	bounds := r2.Box{Max: r2.Vec{X: previewSize, Y: previewSize}}
	l := creature.NewLocomotor(loco, bounds, src)

	pop := cfg.Population
	c, err := creature.New(0, creature.Params{
		HeadPos:        bounds.Center(),
		HeadSize:       float64(p.HeadSize),
		Phase:          0,
		TailLength:     pop.TailLength,
		MaxSizeRatio:   pop.MaxSizeRatio,
		SegmentSpacing: pop.SegmentSpacing,
		TailAmplitude:  pop.TailAmplitude,
		TailWavelength: pop.TailWavelength,
		FootReach:      loco.MaxFootDistMultiplier,
		FootAngle:      loco.FootAngle,
	})
	if err != nil {
		return trace{}, err
	}

	t := trace{
		path:     make([]r2.Vec, 0, traceTicks),
		steering: make([]float64, 0, traceTicks),
	}
	var sink collector
	inside := true
	for tick := 0; tick < traceTicks; tick++ {
		t.steering = append(t.steering, l.Steer(c, tick))
		l.Update(c, tick, r2.Vec{}, &sink)
		t.path = append(t.path, c.Head.Pos)

		now := bounds.Contains(c.Head.Pos)
		if inside && !now {
			t.exits++
		}
		inside = now
	}
	t.footprints = sink.prints
	return t, nil
}

// locomotion returns cfg's locomotion section with p's values applied.
func locomotion(cfg *config.Config, p WanderParams) config.LocomotionConfig {
	loco := cfg.Locomotion
	loco.TurnAmount = float64(p.TurnAmount)
	loco.NoiseTimeScale = float64(p.NoiseTimeScale)
	loco.NoiseLow = float64(p.NoiseLow)
	loco.NoiseHigh = float64(p.NoiseHigh)
	loco.FollowRate = float64(p.FollowRate)
	return loco
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Default()
	params := defaultParams(cfg)

	rl.InitWindow(windowWidth, windowHeight, "Wander Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var tr trace
	needsRun := true

	for !rl.WindowShouldClose() {
		if needsRun {
			var err error
			tr, err = run(cfg, params)
			if err != nil {
				slog.Error("trace failed", "error", err)
			}
			needsRun = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPreview(tr)
		drawSteeringPlot(tr, params)

		statsY := int32(10 + previewSize + plotHeight + 20)
		rl.DrawText(fmt.Sprintf("Footprints: %d  Boundary exits: %d  Ticks: %d",
			len(tr.footprints), tr.exits, traceTicks), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Wander Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		changed = slider(&panelY, panelX, "Turn amount (radians per tick)", "%.3f", &params.TurnAmount, 0, 0.5) || changed
		changed = slider(&panelY, panelX, "Noise time scale (ticks per unit)", "%.0f", &params.NoiseTimeScale, 5, 200) || changed
		changed = slider(&panelY, panelX, "Noise low (maps to full left)", "%.2f", &params.NoiseLow, noiseLowMin, noiseLowMax) || changed
		changed = slider(&panelY, panelX, "Noise high (maps to full right)", "%.2f", &params.NoiseHigh, noiseHighMin, noiseHighMax) || changed
		changed = slider(&panelY, panelX, "Follow rate", "%.2f", &params.FollowRate, 0.02, 0.5) || changed
		changed = slider(&panelY, panelX, "Head size", "%.0f", &params.HeadSize, 10, 80) || changed

		kind := noise.KindSimplex
		if params.Perlin {
			kind = noise.KindPerlin
		}
		rl.DrawText(fmt.Sprintf("Noise: %s  Seed: %d", kind, params.Seed), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Perlin, "Use Simplex", "Use Perlin")) {
			params.Perlin = !params.Perlin
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			changed = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(cfg)
			changed = true
		}
		panelY += 50

		if changed {
			needsRun = true
		}

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and reports whether the value moved.
func slider(y *float32, x float32, label, format string, v *float32, lo, hi float32) bool {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprint(lo), fmt.Sprint(hi),
		*v, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, *v), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	if next != *v {
		*v = next
		return true
	}
	return false
}

func drawPreview(tr trace) {
	const ox, oy = 10, 10
	rl.DrawRectangle(ox, oy, previewSize, previewSize, rl.White)

	for _, f := range tr.footprints {
		pos := rl.Vector2{X: float32(f.Pos.X) + ox, Y: float32(f.Pos.Y) + oy}
		rl.DrawCircleV(pos, float32(f.Size/2), rl.NewColor(150, 150, 150, 60))
	}
	for i := 1; i < len(tr.path); i++ {
		a, b := tr.path[i-1], tr.path[i]
		// Fade older path toward light blue.
		t := float32(i) / float32(len(tr.path))
		col := rl.NewColor(uint8(40+(1-t)*160), uint8(80+(1-t)*140), 200, 255)
		rl.DrawLineEx(
			rl.Vector2{X: float32(a.X) + ox, Y: float32(a.Y) + oy},
			rl.Vector2{X: float32(b.X) + ox, Y: float32(b.Y) + oy},
			2, col,
		)
	}
	if n := len(tr.path); n > 0 {
		end := tr.path[n-1]
		rl.DrawCircleV(rl.Vector2{X: float32(end.X) + ox, Y: float32(end.Y) + oy}, 5, rl.Orange)
	}
	rl.DrawRectangleLines(ox, oy, previewSize, previewSize, rl.DarkGray)
}

func drawSteeringPlot(tr trace, p WanderParams) {
	const ox = 10
	oy := int32(10 + previewSize + 10)
	rl.DrawRectangle(ox, oy, previewSize, plotHeight, rl.White)
	mid := oy + plotHeight/2
	rl.DrawLine(ox, mid, ox+previewSize, mid, rl.LightGray)

	if len(tr.steering) > 1 && p.TurnAmount > 0 {
		scale := float32(plotHeight/2-4) / p.TurnAmount
		dx := float32(previewSize) / float32(len(tr.steering)-1)
		for i := 1; i < len(tr.steering); i++ {
			x0 := float32(ox) + float32(i-1)*dx
			x1 := float32(ox) + float32(i)*dx
			y0 := float32(mid) - float32(tr.steering[i-1])*scale
			y1 := float32(mid) - float32(tr.steering[i])*scale
			rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, rl.DarkBlue)
		}
	}
	rl.DrawText("steering", ox+4, oy+4, 12, rl.Gray)
	rl.DrawRectangleLines(ox, oy, previewSize, plotHeight, rl.DarkGray)
}

func yamlLines(p WanderParams) []string {
	kind := noise.KindSimplex
	if p.Perlin {
		kind = noise.KindPerlin
	}
	return []string{
		"locomotion:",
		fmt.Sprintf("  follow_rate: %.2f", p.FollowRate),
		fmt.Sprintf("  turn_amount: %.3f", p.TurnAmount),
		fmt.Sprintf("  noise_time_scale: %.0f", p.NoiseTimeScale),
		fmt.Sprintf("  noise_low: %.2f", p.NoiseLow),
		fmt.Sprintf("  noise_high: %.2f", p.NoiseHigh),
		"noise:",
		fmt.Sprintf("  kind: %s", kind),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
