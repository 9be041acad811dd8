// Package ui draws the heads-up display and the render controls panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	Title          rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Warning        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme. Panels sit on a white
// background, so text is dark.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 245, G: 245, B: 245, A: 220},
		PanelBorder:    rl.Color{R: 180, G: 180, B: 180, A: 255},
		Title:          rl.Color{R: 30, G: 30, B: 30, A: 255},
		LabelColor:     rl.DarkGray,
		ValueColor:     rl.Black,
		Warning:        rl.Orange,
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     110,
		FontSize:       14,
		HeaderFontSize: 20,
	}
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLabelValue draws a label and value on the same line and returns the
// next Y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}
