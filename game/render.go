package game

import (
	"image/color"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/creature"
	"github.com/pthm-cable/critters/footprint"
	"github.com/pthm-cable/critters/silhouette"
	"github.com/pthm-cable/critters/ui"
)

var (
	footprintGray = rl.Color{R: 150, G: 150, B: 150, A: 255}
	outlineDark   = rl.Color{R: 30, G: 30, B: 30, A: 255}
	legDark       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	outlineOrange = rl.Orange
)

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.White)

	rl.BeginMode2D(g.camera2D())
	g.drawFootprints()
	for _, c := range g.world.Creatures() {
		if g.render.ContinuousShape {
			drawCreatureContinuous(c)
		} else {
			drawCreature(c, g.render.UseSquares)
		}
	}
	rl.EndMode2D()

	g.drawUI()

	rl.EndDrawing()
	g.perf.RecordFrame()
}

func (g *Game) camera2D() rl.Camera2D {
	return rl.NewCamera2D(
		rl.Vector2{X: float32(g.camera.ViewportW / 2), Y: float32(g.camera.ViewportH / 2)},
		vec2(g.camera.Center),
		0,
		float32(g.camera.Zoom),
	)
}

func (g *Game) drawFootprints() {
	maxAge := g.cfg.Footprints.MaxAge
	g.world.Ledger().Each(func(f footprint.Footprint) {
		if !g.camera.IsVisible(f.Pos, f.Size) {
			return
		}
		col := footprintGray
		col.A = uint8(footprint.Alpha(f.Age, maxAge))
		drawSquare(f.Pos, f.Size, f.Facing, 0, col)
	})
}

// drawCreature draws the discrete style: legs, feet and segments in three
// passes (dark outline, orange outline, fill), then the head.
func drawCreature(c *creature.Creature, useSquares bool) {
	fill := rlColor(c.Colour)
	passes := []struct {
		grow    float64
		stroke  rl.Color
		outline bool
	}{
		{10, outlineDark, true},
		{5, outlineOrange, true},
		{0, fill, false},
	}

	for _, p := range passes {
		for _, seg := range c.Tail {
			for _, foot := range seg.Feet {
				drawLeg(c, seg, foot, p.outline)
				drawSquare(foot.Pos, foot.Size, foot.Facing, p.grow, p.stroke)
			}
		}
		for _, seg := range c.Tail {
			if useSquares {
				drawSquare(seg.Pos, seg.Size*1.1, seg.Facing, p.grow, p.stroke)
			} else {
				drawDisc(seg.Pos, seg.Size*1.2, p.grow, p.stroke)
			}
		}
		drawSquare(c.Head.Pos, c.Head.Size, c.Head.Facing, p.grow, p.stroke)
	}
	drawEyes(c.Head, 1.0/3)
}

func drawLeg(c *creature.Creature, seg creature.Segment, foot creature.Foot, outline bool) {
	width, col := seg.Size*0.33, rlColor(c.Colour)
	if outline {
		width, col = seg.Size*0.6, legDark
	}
	rl.DrawLineEx(vec2(seg.Pos), vec2(foot.Pos), float32(width), col)
}

// drawCreatureContinuous fills the outline polygon and strokes it twice,
// dark and wide then orange and narrow, before adding the eyes.
func drawCreatureContinuous(c *creature.Creature) {
	outline := silhouette.Build(c)
	tris := outline.Triangles()
	fill := rlColor(c.Colour)

	fillTriangles(tris, fill)
	strokePolygon(outline.Points, 10, outlineDark)
	fillTriangles(tris, fill)
	strokePolygon(outline.Points, 4, outlineOrange)

	drawEyes(c.Head, 0.5)
}

// fillTriangles draws triangles wound counter-clockwise in y-up space,
// which is clockwise on a y-down screen, so each is drawn reversed.
func fillTriangles(tris []silhouette.Triangle, col rl.Color) {
	for _, t := range tris {
		rl.DrawTriangle(vec2(t[0]), vec2(t[2]), vec2(t[1]), col)
	}
}

func strokePolygon(pts []r2.Vec, width float32, col rl.Color) {
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		rl.DrawLineEx(vec2(p), vec2(q), width, col)
		rl.DrawCircleV(vec2(p), width/2, col)
	}
}

// drawEyes draws a pair of eyes on the sides of the head. scale is the
// eye diameter relative to head size; pupils are half that.
func drawEyes(h creature.Head, scale float64) {
	for _, side := range []float64{-1, 1} {
		offset := r2.Rotate(r2.Vec{Y: side * h.Size * 0.5}, h.Facing, r2.Vec{})
		pos := r2.Add(h.Pos, offset)
		eye := h.Size * scale
		drawDisc(pos, eye, 1, outlineDark)
		drawDisc(pos, eye, 0, rl.White)
		drawDisc(pos, eye/2, 0, outlineDark)
	}
}

// drawSquare draws a square of side size+grow centred on pos, rotated by
// angle radians.
func drawSquare(pos r2.Vec, size, angle, grow float64, col rl.Color) {
	s := float32(size + grow)
	rl.DrawRectanglePro(
		rl.Rectangle{X: float32(pos.X), Y: float32(pos.Y), Width: s, Height: s},
		rl.Vector2{X: s / 2, Y: s / 2},
		float32(angle*180/math.Pi),
		col,
	)
}

func drawDisc(pos r2.Vec, diameter, grow float64, col rl.Color) {
	rl.DrawCircleV(vec2(pos), float32((diameter+grow)/2), col)
}

func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Tick:       g.tick,
		Creatures:  len(g.world.Creatures()),
		Footprints: g.world.Ledger().Len(),
		Speed:      g.stepsPerUpdate,
		FPS:        rl.GetFPS(),
		Paused:     g.paused,
	})

	regenerate := g.controls.Draw([]ui.Toggle{
		{Label: "Continuous shape", KeyLabel: "C", Value: &g.render.ContinuousShape},
		{Label: "Square segments", KeyLabel: "Q", Value: &g.render.UseSquares},
		{Label: "Paused", KeyLabel: "Space", Value: &g.paused},
	})
	if regenerate {
		if err := g.Regenerate(); err != nil {
			slog.Error("regenerate failed", "error", err)
		}
	}

	if g.showPerf {
		g.perfUI.Draw(g.perf.Stats())
	}

	g.hud.DrawControls(int32(g.screenHeight),
		"R: Regenerate | C: Continuous | Q: Squares | SPACE: Pause | < >: Speed | P: Perf | Arrows/Wheel: Camera | Home: Reset")
}

func vec2(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
