package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/telemetry"
)

// ContinuousHint is shown at the top left of the screen.
const ContinuousHint = "'c' to toggle continuous shape"

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick       int
	Creatures  int
	Footprints int
	Speed      int
	FPS        int32
	Paused     bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	t := h.renderer.Theme
	rl.DrawText(ContinuousHint, 10, 10, t.HeaderFontSize, t.Title)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Creatures: %d | Footprints: %d",
			data.Tick, data.Speed, data.FPS, data.Creatures, data.Footprints),
		10, 36, t.FontSize, t.LabelColor,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 56, t.FontSize, t.Warning)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	t := r.Theme
	height := t.Padding*2 + t.LineHeight*int32(len(telemetry.Phases)+3)
	r.DrawPanel(p.x, p.y, 240, height)

	x := p.x + t.Padding
	y := p.y + t.Padding
	y = r.DrawLabelValue(x, y, "tick", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "p90 tick", stats.P90TickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "ticks/sec", fmt.Sprintf("%.0f", stats.TicksPerSecond))
	for _, phase := range telemetry.Phases {
		y = r.DrawLabelValue(x, y, phase, fmt.Sprintf("%5.1f%%", stats.PhasePct[phase]))
	}
}
