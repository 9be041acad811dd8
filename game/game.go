// Package game runs the simulation in a raylib window or headless, wiring
// the world to input, rendering and telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/camera"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/noise"
	"github.com/pthm-cable/critters/sim"
	"github.com/pthm-cable/critters/telemetry"
	"github.com/pthm-cable/critters/ui"
)

// Options holds runtime settings that come from the command line.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// RenderOptions are display flags. They never affect the simulation.
type RenderOptions struct {
	UseSquares      bool
	ContinuousShape bool
}

// ToggleContinuousShapeMode switches between the outline silhouette and
// discrete segments.
func (r *RenderOptions) ToggleContinuousShapeMode() {
	r.ContinuousShape = !r.ContinuousShape
}

// ToggleSquares switches segment shapes between squares and circles.
func (r *RenderOptions) ToggleSquares() {
	r.UseSquares = !r.UseSquares
}

// Game holds the complete game state.
type Game struct {
	cfg   *config.Config
	world *sim.World

	// Rendering
	camera   *camera.Camera
	render   RenderOptions
	hud      *ui.HUD
	controls *ui.ControlsPanel
	perfUI   *ui.PerfPanel
	showPerf bool

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	// State
	tick           int
	paused         bool
	headless       bool
	stepsPerUpdate int
	cursor         r2.Vec

	// Window dimensions
	screenWidth, screenHeight float64
}

// NewGame creates a game from cfg and opts and populates the world.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	src, err := noise.New(cfg.Noise.Kind, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating noise source: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:   cfg,
		world: sim.New(cfg, rand.New(rand.NewSource(opts.Seed)), src),
		render: RenderOptions{
			UseSquares:      cfg.Render.UseSquares,
			ContinuousShape: cfg.Render.ContinuousShape,
		},
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:         output,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		screenWidth:    float64(cfg.Screen.Width),
		screenHeight:   float64(cfg.Screen.Height),
	}
	g.world.SetPhaseTimer(g.perf)

	if !g.headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight, cfg.Derived.WorldW, cfg.Derived.WorldH)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(int32(g.screenWidth)-230, 10, 220)
		g.perfUI = ui.NewPerfPanel(int32(g.screenWidth)-250, 140)
	}

	if err := g.Regenerate(); err != nil {
		output.Close()
		return nil, err
	}
	return g, nil
}

// Regenerate replaces every creature and clears all footprints.
func (g *Game) Regenerate() error {
	count := g.cfg.Population.Count
	if err := g.world.Regenerate(count); err != nil {
		return fmt.Errorf("regenerating world: %w", err)
	}
	g.collector.Forget()
	slog.Info("regenerated", "tick", g.tick, "creatures", count)
	return nil
}

// Tick returns the number of simulation steps taken so far.
func (g *Game) Tick() int {
	return g.tick
}

// World returns the simulation world.
func (g *Game) World() *sim.World {
	return g.world
}

// Update handles input and runs stepsPerUpdate simulation steps unless
// paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs stepsPerUpdate steps with a cursor orbiting the
// world centre in place of the mouse.
func (g *Game) UpdateHeadless() {
	bounds := sim.Bounds(g.cfg)
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.cursor = sim.OrbitCursor(bounds, g.tick)
		g.step()
	}
}

// step advances the world by exactly one tick.
func (g *Game) step() {
	g.perf.StartTick()

	g.tick++
	report := g.world.Advance(g.tick, g.cursor)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(report.Steps, report.Pruned, g.world.HeadSamples(), g.cursor)
	g.flushTelemetry()

	g.perf.EndTick()
}

// Unload flushes and closes output files.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
