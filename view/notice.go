package view

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/app"
	"github.com/lixenwraith/keepsake/theme"
	"github.com/lixenwraith/keepsake/tui"
)

// NoticeView is the blocking screen shown when a card reference cannot be
// resolved: a missing identifier, a malformed link, or an unreachable
// backend. It offers only the compose screen as a way out.
type NoticeView struct {
	deps    *Deps
	app     *app.App
	title   string
	message string
	th      theme.Theme
	w, h    int
}

func NewNoticeView(deps *Deps, title, message string) *NoticeView {
	th, _ := theme.Lookup(theme.Default)
	return &NoticeView{deps: deps, title: title, message: message, th: th}
}

func (v *NoticeView) Mount(a *app.App) {
	v.app = a
	v.w, v.h = a.Screen().Size()
}

func (v *NoticeView) Unmount() {}

func (v *NoticeView) Tick(now time.Time) {}

func (v *NoticeView) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.w, v.h = ev.Size()
		return true
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			v.app.Stop()
			return true
		case tcell.KeyEnter:
			v.app.SetView(NewCreateView(v.deps))
			return true
		}
	}
	return false
}

func (v *NoticeView) Draw(s tcell.Screen) {
	ps := paperStyle(v.th)
	tui.FillRect(s, 0, 0, v.w, v.h, ' ', ps)

	cw := containerW
	if cw > v.w-4 {
		cw = v.w - 4
	}
	x := (v.w - cw) / 2
	y := v.h/2 - 4
	cs := containerStyle(v.th)
	tui.FillRect(s, x, y, cw, 7, ' ', cs)
	tui.DrawBox(s, x, y, cw, 7, cs)
	tui.DrawTextCentered(s, y+1, cs.Foreground(v.th.Colors.Accent), v.title)
	for i, line := range tui.WrapText(v.message, cw-4) {
		if i >= 3 {
			break
		}
		tui.DrawTextCentered(s, y+3+i, cs, line)
	}
	tui.DrawTextCentered(s, v.h-3, ps, "enter make your own  esc quit")
}
