package tui

import "github.com/gdamore/tcell/v2"

// TextField is a single-line editable input. Multi-line editing is handled
// by stacking fields; the compose body uses a TextArea.
type TextField struct {
	Label   string
	Value   []rune
	Cursor  int
	MaxLen  int
	Focused bool
}

// HandleKey applies a key event, reporting whether it was consumed.
func (f *TextField) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		if f.MaxLen > 0 && len(f.Value) >= f.MaxLen {
			return true
		}
		f.Value = append(f.Value[:f.Cursor], append([]rune{ev.Rune()}, f.Value[f.Cursor:]...)...)
		f.Cursor++
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if f.Cursor > 0 {
			f.Value = append(f.Value[:f.Cursor-1], f.Value[f.Cursor:]...)
			f.Cursor--
		}
		return true
	case tcell.KeyDelete:
		if f.Cursor < len(f.Value) {
			f.Value = append(f.Value[:f.Cursor], f.Value[f.Cursor+1:]...)
		}
		return true
	case tcell.KeyLeft:
		if f.Cursor > 0 {
			f.Cursor--
		}
		return true
	case tcell.KeyRight:
		if f.Cursor < len(f.Value) {
			f.Cursor++
		}
		return true
	case tcell.KeyHome, tcell.KeyCtrlA:
		f.Cursor = 0
		return true
	case tcell.KeyEnd, tcell.KeyCtrlE:
		f.Cursor = len(f.Value)
		return true
	}
	return false
}

// String returns the field content.
func (f *TextField) String() string { return string(f.Value) }

// SetString replaces the field content, moving the cursor to the end.
func (f *TextField) SetString(s string) {
	f.Value = []rune(s)
	f.Cursor = len(f.Value)
}

// Draw renders "Label: value" at (x, y) within width w.
func (f *TextField) Draw(s tcell.Screen, x, y, w int, style, focusStyle tcell.Style) {
	st := style
	if f.Focused {
		st = focusStyle
	}
	FillRect(s, x, y, w, 1, ' ', st)
	prefix := ""
	if f.Label != "" {
		prefix = f.Label + ": "
	}
	DrawText(s, x, y, st, prefix+string(f.Value))
	if f.Focused {
		cx := x + len([]rune(prefix)) + f.Cursor
		if cx < x+w {
			s.ShowCursor(cx, y)
		}
	}
}

// TextArea is a minimal multi-line input for the message body.
type TextArea struct {
	Lines   [][]rune
	Row     int
	Col     int
	Focused bool
}

// NewTextArea returns an area with one empty line.
func NewTextArea() *TextArea {
	return &TextArea{Lines: [][]rune{{}}}
}

// HandleKey applies a key event, reporting whether it was consumed.
func (a *TextArea) HandleKey(ev *tcell.EventKey) bool {
	line := a.Lines[a.Row]
	switch ev.Key() {
	case tcell.KeyRune:
		a.Lines[a.Row] = append(line[:a.Col], append([]rune{ev.Rune()}, line[a.Col:]...)...)
		a.Col++
		return true
	case tcell.KeyEnter:
		rest := append([]rune{}, line[a.Col:]...)
		a.Lines[a.Row] = line[:a.Col]
		a.Lines = append(a.Lines[:a.Row+1], append([][]rune{rest}, a.Lines[a.Row+1:]...)...)
		a.Row++
		a.Col = 0
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		switch {
		case a.Col > 0:
			a.Lines[a.Row] = append(line[:a.Col-1], line[a.Col:]...)
			a.Col--
		case a.Row > 0:
			prev := a.Lines[a.Row-1]
			a.Col = len(prev)
			a.Lines[a.Row-1] = append(prev, line...)
			a.Lines = append(a.Lines[:a.Row], a.Lines[a.Row+1:]...)
			a.Row--
		}
		return true
	case tcell.KeyUp:
		if a.Row > 0 {
			a.Row--
			a.clampCol()
		}
		return true
	case tcell.KeyDown:
		if a.Row < len(a.Lines)-1 {
			a.Row++
			a.clampCol()
		}
		return true
	case tcell.KeyLeft:
		if a.Col > 0 {
			a.Col--
		}
		return true
	case tcell.KeyRight:
		if a.Col < len(line) {
			a.Col++
		}
		return true
	}
	return false
}

// AtTop reports whether the cursor sits on the first line.
func (a *TextArea) AtTop() bool { return a.Row == 0 }

// AtBottom reports whether the cursor sits on the last line.
func (a *TextArea) AtBottom() bool { return a.Row == len(a.Lines)-1 }

func (a *TextArea) clampCol() {
	if a.Col > len(a.Lines[a.Row]) {
		a.Col = len(a.Lines[a.Row])
	}
}

// String joins the lines with newlines.
func (a *TextArea) String() string {
	out := ""
	for i, l := range a.Lines {
		if i > 0 {
			out += "\n"
		}
		out += string(l)
	}
	return out
}

// SetString replaces the content.
func (a *TextArea) SetString(s string) {
	a.Lines = nil
	for _, l := range splitLines(s) {
		a.Lines = append(a.Lines, []rune(l))
	}
	if len(a.Lines) == 0 {
		a.Lines = [][]rune{{}}
	}
	a.Row = len(a.Lines) - 1
	a.Col = len(a.Lines[a.Row])
}

// Draw renders the area clipped to the given rectangle.
func (a *TextArea) Draw(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for i := 0; i < h && i < len(a.Lines); i++ {
		DrawText(s, x, y+i, style, string(a.Lines[i]))
	}
	if a.Focused && a.Row < h && a.Col < w {
		s.ShowCursor(x+a.Col, y+a.Row)
	}
}
