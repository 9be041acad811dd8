package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Toggle is a boolean setting shown as a checkbox and bound to a key.
type Toggle struct {
	Label    string
	KeyLabel string
	Value    *bool
}

// ControlsPanel renders checkboxes for render toggles and a regenerate
// button.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel, writing checkbox changes through each toggle's
// Value. It reports whether the regenerate button was clicked.
func (c *ControlsPanel) Draw(toggles []Toggle) (regenerate bool) {
	r := c.renderer
	t := r.Theme
	const rowHeight = 24
	height := t.Padding*3 + rowHeight*int32(len(toggles)) + 30
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x + t.Padding)
	y := float32(c.y + t.Padding)
	for _, tg := range toggles {
		label := tg.Label
		if tg.KeyLabel != "" {
			label += " (" + tg.KeyLabel + ")"
		}
		*tg.Value = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, label, *tg.Value)
		y += rowHeight
	}

	y += float32(t.Padding)
	return gui.Button(rl.Rectangle{X: x, Y: y, Width: float32(c.width - 2*t.Padding), Height: 30}, "Regenerate (R)")
}
