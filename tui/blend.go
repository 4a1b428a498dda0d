package tui

import "github.com/gdamore/tcell/v2"

// Blend linearly interpolates from a to b by t in [0,1]. Terminal cells
// have no alpha channel, so translucency is simulated by blending the
// foreground toward the backdrop color.
func Blend(a, b tcell.Color, t float64) tcell.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab := a.TrueColor().RGB()
	br, bg, bb := b.TrueColor().RGB()
	lerp := func(x, y int32) int32 {
		return x + int32(float64(y-x)*t)
	}
	return tcell.NewRGBColor(lerp(ar, br), lerp(ag, bg), lerp(ab, bb))
}
