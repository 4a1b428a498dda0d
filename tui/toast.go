package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// ToastSeverity defines message type for styling
type ToastSeverity uint8

const (
	ToastInfo    ToastSeverity = iota // Default, neutral
	ToastSuccess                      // Positive
	ToastWarning                      // Caution
	ToastError                        // Failure
)

// ToastIcons for severity levels
var ToastIcons = map[ToastSeverity]rune{
	ToastInfo:    'ℹ',
	ToastSuccess: '✓',
	ToastWarning: '⚠',
	ToastError:   '✗',
}

// ToastColors default colors per severity
var ToastColors = map[ToastSeverity]struct{ Fg, Bg tcell.Color }{
	ToastInfo:    {Fg: tcell.NewRGBColor(200, 200, 200), Bg: tcell.NewRGBColor(40, 40, 50)},
	ToastSuccess: {Fg: tcell.NewRGBColor(220, 255, 220), Bg: tcell.NewRGBColor(30, 60, 30)},
	ToastWarning: {Fg: tcell.NewRGBColor(255, 240, 200), Bg: tcell.NewRGBColor(60, 50, 20)},
	ToastError:   {Fg: tcell.NewRGBColor(255, 220, 220), Bg: tcell.NewRGBColor(60, 25, 25)},
}

// Toast is a transient full-width notification bar at the bottom of the
// screen, auto-dismissed after its deadline.
type Toast struct {
	message  string
	severity ToastSeverity
	until    time.Time
}

// Show replaces any visible toast.
func (t *Toast) Show(message string, severity ToastSeverity, now time.Time, dur time.Duration) {
	t.message = message
	t.severity = severity
	t.until = now.Add(dur)
}

// Active reports whether the toast is still visible at now.
func (t *Toast) Active(now time.Time) bool {
	return t.message != "" && now.Before(t.until)
}

// Draw renders the toast bar on the bottom row.
func (t *Toast) Draw(s tcell.Screen, now time.Time) {
	if !t.Active(now) {
		return
	}
	w, h := s.Size()
	colors := ToastColors[t.severity]
	style := tcell.StyleDefault.Foreground(colors.Fg).Background(colors.Bg)
	FillRect(s, 0, h-1, w, 1, ' ', style)
	DrawText(s, 1, h-1, style, string(ToastIcons[t.severity])+" "+t.message)
}
