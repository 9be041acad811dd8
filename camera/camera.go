// Package camera provides a 2D camera system for viewport control.
package camera

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/vecmath"
)

// Camera controls the viewport into the simulation world.
// Supports pan and zoom; the centre stays inside the world box.
type Camera struct {
	// Center is the camera center in world coordinates
	Center r2.Vec

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// World dimensions
	WorldW, WorldH float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the world with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   4.0,
	}
	c.MinZoom = c.fitZoom() / 2
	c.Reset()
	return c
}

// fitZoom is the zoom at which the whole world just fits the viewport.
// Wanderers stray past the edges, so the camera may zoom out to half of it.
func (c *Camera) fitZoom() float64 {
	return min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p r2.Vec) r2.Vec {
	d := r2.Scale(c.Zoom, r2.Sub(p, c.Center))
	return r2.Vec{X: c.ViewportW/2 + d.X, Y: c.ViewportH/2 + d.Y}
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	d := r2.Vec{X: s.X - c.ViewportW/2, Y: s.Y - c.ViewportH/2}
	return r2.Add(c.Center, r2.Scale(1/c.Zoom, d))
}

// IsVisible returns true if a circle at p with given radius could be
// visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p r2.Vec, radius float64) bool {
	return distToBox(p, c.VisibleWorldBounds()) <= radius
}

func distToBox(p r2.Vec, b r2.Box) float64 {
	q := r2.Vec{
		X: vecmath.Clamp(p.X, b.Min.X, b.Max.X),
		Y: vecmath.Clamp(p.Y, b.Min.Y, b.Max.Y),
	}
	return vecmath.Dist(p, q)
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.fitZoom() / 2
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center = c.clampCenter(r2.Add(c.Center, r2.Vec{X: dx / c.Zoom, Y: dy / c.Zoom}))
}

func (c *Camera) clampCenter(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: vecmath.Clamp(p.X, 0, c.WorldW),
		Y: vecmath.Clamp(p.Y, 0, c.WorldH),
	}
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = vecmath.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the world point under the screen
// position s fixed, as mouse wheel zooming expects.
func (c *Camera) ZoomAt(s r2.Vec, factor float64) {
	anchor := c.ScreenToWorld(s)
	c.ZoomBy(factor)
	drift := r2.Sub(anchor, c.ScreenToWorld(s))
	c.Center = c.clampCenter(r2.Add(c.Center, drift))
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.Center = r2.Vec{X: c.WorldW / 2, Y: c.WorldH / 2}
	c.SetZoom(1.0)
}

// VisibleWorldBounds returns the world-coordinate box of the visible area.
func (c *Camera) VisibleWorldBounds() r2.Box {
	half := r2.Vec{X: c.ViewportW / (2 * c.Zoom), Y: c.ViewportH / (2 * c.Zoom)}
	return r2.Box{Min: r2.Sub(c.Center, half), Max: r2.Add(c.Center, half)}
}
