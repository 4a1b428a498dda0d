package view

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/parameter"
	"github.com/lixenwraith/keepsake/theme"
	"github.com/lixenwraith/keepsake/tui"
)

// Container art sizes
const (
	containerW = 46
	containerH = 10
)

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func phase(elapsed time.Duration, delay, dur time.Duration) float64 {
	return clamp01(float64(elapsed-delay) / float64(dur))
}

// drawEnvelope renders the standard variant: the letter lifts out from
// behind the front panel while the flap rotates open. Drawn purely from
// elapsed time against the animation durations in parameter.
func drawEnvelope(s tcell.Screen, th theme.Theme, w, h int, elapsed time.Duration) {
	cx := (w - containerW) / 2
	cy := (h-containerH)/2 + 2

	panel := phase(elapsed, 0, parameter.PanelDuration)
	flap := phase(elapsed, 0, parameter.FlapDuration)

	cs := containerStyle(th)
	as := accentStyle(th)

	// letter sliding up from behind the front panel
	lift := int(panel * 7)
	if lift > 0 {
		ls := tcell.StyleDefault.Foreground(th.Colors.Container).Background(th.Colors.Text)
		top := cy - lift
		tui.FillRect(s, cx+4, top, containerW-8, lift+2, ' ', ls)
		tui.DrawBox(s, cx+4, top, containerW-8, lift+2, ls)
		if lift > 3 {
			tui.DrawText(s, cx+7, top+1, ls, "a keepsake for you")
		}
	}

	// envelope body
	tui.FillRect(s, cx, cy, containerW, containerH, ' ', cs)
	tui.DrawBox(s, cx, cy, containerW, containerH, cs)

	// flap rotating open: drawn as a shrinking V
	flapRows := int((1 - flap) * 4)
	for row := 0; row < flapRows; row++ {
		inset := 1 + row*(containerW/2-2)/4
		for col := cx + inset; col < cx+containerW-inset; col++ {
			s.SetContent(col, cy+row, '▚', nil, as)
		}
	}
	if elapsed == 0 {
		tui.DrawTextCentered(s, cy+containerH/2, cs, "❤")
	}
}

// drawGiftBox renders the holiday variant: lid rotates off, bow shrinks,
// content rises between the box walls and jumps to the foreground depth at
// the fixed mark.
func drawGiftBox(s tcell.Screen, th theme.Theme, w, h int, elapsed time.Duration, foreground bool) {
	cx := (w - containerW) / 2
	cy := (h-containerH)/2 + 2

	lid := phase(elapsed, parameter.LidDelay, parameter.LidDuration)
	rise := phase(elapsed, parameter.RiseDelay, parameter.RiseDuration)

	cs := containerStyle(th)
	as := accentStyle(th)

	drawContent := func() {
		if rise <= 0 {
			return
		}
		riseRows := int(rise * 8)
		top := cy + 2 - riseRows
		ls := tcell.StyleDefault.Foreground(th.Colors.Container).Background(th.Colors.Text)
		tui.FillRect(s, cx+6, top, containerW-12, 3, ' ', ls)
		tui.DrawBox(s, cx+6, top, containerW-12, 3, ls)
		tui.DrawText(s, cx+9, top+1, ls, "a keepsake for you")
	}

	// back wall, then sandwiched content, then front wall
	tui.FillRect(s, cx, cy, containerW, containerH, ' ', cs)
	if !foreground {
		drawContent()
	}
	tui.DrawBox(s, cx, cy, containerW, containerH, cs)
	frontH := containerH / 2
	tui.FillRect(s, cx+1, cy+containerH-frontH, containerW-2, frontH-1, '▒', cs)

	// lid lifting off with a slight delay
	lidY := cy - 1 - int(lid*8)
	if lid < 1 {
		tui.FillRect(s, cx-1, lidY, containerW+2, 1, '▄', as)
	}

	// bow shrinking away
	if lid < 0.5 {
		bowW := int((1 - lid*2) * 5)
		for i := 0; i < bowW; i++ {
			s.SetContent(cx+containerW/2-bowW/2+i, lidY-1, '✿', nil, as)
		}
	}

	if foreground {
		drawContent()
	}
}
