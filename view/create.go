package view

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/app"
	"github.com/lixenwraith/keepsake/model"
	"github.com/lixenwraith/keepsake/parameter"
	"github.com/lixenwraith/keepsake/particle"
	"github.com/lixenwraith/keepsake/scribe"
	"github.com/lixenwraith/keepsake/share"
	"github.com/lixenwraith/keepsake/theme"
	"github.com/lixenwraith/keepsake/tui"
)

// Focusable form rows, in tab order.
const (
	focusRecipient = iota
	focusSender
	focusRelationship
	focusBody
	focusTheme
	focusPublic
	focusUnlock
	focusCoupon
	focusCouponTitle
	focusCouponContact
	focusCouponStyle
	focusTrack
	focusCount
)

const unlockLayout = "2006-01-02 15:04"

// CreateView is the compose form. The selected theme's particle field runs
// live behind the panel so theme switching previews instantly.
type CreateView struct {
	deps *Deps
	app  *app.App

	recipient tui.TextField
	sender    tui.TextField
	body      *tui.TextArea
	unlock    tui.TextField
	track     tui.TextField
	cpTitle   tui.TextField
	cpContact tui.TextField

	relIdx     int
	themeIdx   int
	public     bool
	hasCoupon  bool
	cpStyleIdx int

	focus int
	busy  bool

	field *particle.Field
	toast tui.Toast
	w, h  int
}

func NewCreateView(deps *Deps) *CreateView {
	v := &CreateView{deps: deps, body: tui.NewTextArea()}
	for i, id := range theme.All() {
		if id == theme.Default {
			v.themeIdx = i
		}
	}
	return v
}

// NewCreateViewWith seeds the form from an existing draft, used when the
// composer returns from a preview.
func NewCreateViewWith(deps *Deps, m model.Message) *CreateView {
	v := NewCreateView(deps)
	v.recipient.SetString(m.RecipientName)
	v.sender.SetString(m.SenderName)
	v.body.SetString(m.Body)
	v.track.SetString(m.TrackURL)
	v.public = m.Public
	for i, rel := range model.Relationships {
		if rel == m.Relationship {
			v.relIdx = i
		}
	}
	for i, id := range theme.All() {
		if id == theme.ID(m.Theme) {
			v.themeIdx = i
		}
	}
	if m.UnlockAt != nil {
		v.unlock.SetString(m.UnlockAt.Local().Format(unlockLayout))
	}
	if m.Coupon != nil {
		v.hasCoupon = true
		v.cpTitle.SetString(m.Coupon.Title)
		v.cpContact.SetString(m.Coupon.Contact)
		for i, st := range model.CouponStyles {
			if st == m.Coupon.Style {
				v.cpStyleIdx = i
			}
		}
	}
	return v
}

func (v *CreateView) theme() theme.Theme {
	th, _ := theme.Lookup(theme.All()[v.themeIdx])
	return th
}

func (v *CreateView) Mount(a *app.App) {
	v.app = a
	v.w, v.h = a.Screen().Size()
	v.field = particle.NewField(v.theme().ID, v.w, v.h)
}

func (v *CreateView) Unmount() {
	v.field.Stop()
}

func (v *CreateView) Tick(now time.Time) {
	v.field.Step()
}

func (v *CreateView) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.w, v.h = ev.Size()
		v.field.Resize(v.w, v.h)
		return true
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return false
}

func (v *CreateView) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		v.app.Stop()
		return true
	case tcell.KeyTab:
		v.moveFocus(1)
		return true
	case tcell.KeyBacktab:
		v.moveFocus(-1)
		return true
	case tcell.KeyCtrlS:
		v.save()
		return true
	case tcell.KeyCtrlP:
		v.app.SetView(NewRevealView(v.deps, v.buildMessage(), true))
		return true
	case tcell.KeyCtrlG:
		v.runScribe()
		return true
	case tcell.KeyCtrlT:
		v.suggestTheme()
		return true
	case tcell.KeyCtrlF:
		v.app.SetView(NewFeedView(v.deps))
		return true
	}

	switch v.focus {
	case focusRecipient:
		return v.recipient.HandleKey(ev)
	case focusSender:
		return v.sender.HandleKey(ev)
	case focusBody:
		if ev.Key() == tcell.KeyUp && v.body.AtTop() {
			v.moveFocus(-1)
			return true
		}
		if ev.Key() == tcell.KeyDown && v.body.AtBottom() {
			v.moveFocus(1)
			return true
		}
		return v.body.HandleKey(ev)
	case focusUnlock:
		return v.unlock.HandleKey(ev)
	case focusCouponTitle:
		return v.cpTitle.HandleKey(ev)
	case focusCouponContact:
		return v.cpContact.HandleKey(ev)
	case focusTrack:
		return v.track.HandleKey(ev)
	case focusRelationship:
		if d := cycleDelta(ev); d != 0 {
			v.relIdx = wrap(v.relIdx+d, len(model.Relationships))
			return true
		}
	case focusTheme:
		if d := cycleDelta(ev); d != 0 {
			v.themeIdx = wrap(v.themeIdx+d, len(theme.All()))
			v.field.Retarget(v.theme().ID)
			return true
		}
	case focusPublic:
		if toggled(ev) {
			v.public = !v.public
			return true
		}
	case focusCoupon:
		if toggled(ev) {
			v.hasCoupon = !v.hasCoupon
			return true
		}
	case focusCouponStyle:
		if d := cycleDelta(ev); d != 0 {
			v.cpStyleIdx = wrap(v.cpStyleIdx+d, len(model.CouponStyles))
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyUp:
		v.moveFocus(-1)
		return true
	case tcell.KeyDown, tcell.KeyEnter:
		v.moveFocus(1)
		return true
	}
	return false
}

func (v *CreateView) moveFocus(d int) {
	for {
		v.focus = wrap(v.focus+d, focusCount)
		if v.hasCoupon {
			return
		}
		switch v.focus {
		case focusCouponTitle, focusCouponContact, focusCouponStyle:
			continue
		}
		return
	}
}

func cycleDelta(ev *tcell.EventKey) int {
	switch ev.Key() {
	case tcell.KeyLeft:
		return -1
	case tcell.KeyRight:
		return 1
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return 1
		}
	}
	return 0
}

func toggled(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyLeft || ev.Key() == tcell.KeyRight ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == ' ')
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func (v *CreateView) buildMessage() model.Message {
	m := model.Message{
		SenderName:    v.sender.String(),
		RecipientName: v.recipient.String(),
		Relationship:  model.Relationships[v.relIdx],
		Body:          v.body.String(),
		Theme:         string(v.theme().ID),
		Public:        v.public,
		TrackURL:      v.track.String(),
	}
	if s := v.unlock.String(); s != "" {
		if t, err := time.ParseInLocation(unlockLayout, s, time.Local); err == nil {
			t = t.UTC()
			m.UnlockAt = &t
		}
	}
	if v.hasCoupon && v.cpTitle.String() != "" {
		m.Coupon = &model.Coupon{
			Title:   v.cpTitle.String(),
			Style:   model.CouponStyles[v.cpStyleIdx],
			Contact: v.cpContact.String(),
		}
	}
	return m
}

func (v *CreateView) save() {
	if v.busy {
		return
	}
	now := v.deps.clock().Now()
	if v.recipient.String() == "" || v.body.String() == "" {
		v.toast.Show("a keepsake needs a recipient and a message", tui.ToastWarning, now, parameter.ToastDuration)
		return
	}
	if s := v.unlock.String(); s != "" {
		if _, err := time.ParseInLocation(unlockLayout, s, time.Local); err != nil {
			v.toast.Show("unlock time must look like "+unlockLayout, tui.ToastWarning, now, parameter.ToastDuration)
			return
		}
	}

	v.busy = true
	msg := v.buildMessage()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		id, err := v.deps.Store.Create(ctx, msg)
		v.app.Post(func() {
			v.busy = false
			if err != nil {
				v.toast.Show("couldn't save the keepsake", tui.ToastError,
					v.deps.clock().Now(), parameter.ToastDuration)
				return
			}
			msg.ID = id
			msg.CreatedAt = v.deps.clock().Now()
			link := share.BuildLink(v.deps.Cfg.ShareBaseURL, id)
			share.CopyToClipboard(v.app.Screen(), link)
			v.app.SetView(NewRevealView(v.deps, msg, false))
		})
	}()
}

func (v *CreateView) runScribe() {
	if v.busy {
		return
	}
	v.busy = true
	mode := scribe.ModePolish
	if v.body.String() == "" {
		mode = scribe.ModeDraft
	}
	text := v.body.String()
	sender, recipient := v.sender.String(), v.recipient.String()
	rel := model.Relationships[v.relIdx]
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		out := v.deps.Scribe.DraftOrPolish(ctx, text, sender, recipient, rel, mode)
		v.app.Post(func() {
			v.busy = false
			if out != text {
				v.body.SetString(out)
			}
		})
	}()
}

func (v *CreateView) suggestTheme() {
	if v.busy {
		return
	}
	v.busy = true
	text := v.body.String()
	rel := model.Relationships[v.relIdx]
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		id := v.deps.Scribe.SuggestTheme(ctx, text, rel)
		v.app.Post(func() {
			v.busy = false
			for i, tid := range theme.All() {
				if tid == id {
					v.themeIdx = i
					v.field.Retarget(id)
					return
				}
			}
		})
	}()
}

func (v *CreateView) Draw(s tcell.Screen) {
	th := v.theme()
	ps := paperStyle(th)
	as := accentStyle(th)
	tui.FillRect(s, 0, 0, v.w, v.h, ' ', ps)
	v.field.Draw(s)

	panelW := 64
	if panelW > v.w-2 {
		panelW = v.w - 2
	}
	x := (v.w - panelW) / 2
	y := 1
	pane := containerStyle(th)
	focusStyle := pane.Reverse(true)

	s.HideCursor()
	v.recipient.Focused = v.focus == focusRecipient
	v.sender.Focused = v.focus == focusSender
	v.body.Focused = v.focus == focusBody
	v.unlock.Focused = v.focus == focusUnlock
	v.cpTitle.Focused = v.focus == focusCouponTitle
	v.cpContact.Focused = v.focus == focusCouponContact
	v.track.Focused = v.focus == focusTrack

	rows := 20
	if v.hasCoupon {
		rows += 3
	}
	tui.FillRect(s, x, y, panelW, rows, ' ', pane)
	tui.DrawBox(s, x, y, panelW, rows, pane)
	tui.DrawTextCentered(s, y+1, as, "✉ make a keepsake")

	fx := x + 16
	fw := panelW - 18
	line := y + 3

	label := func(text string) {
		tui.DrawText(s, x+2, line, pane, text)
	}
	cycler := func(value string, focused bool) {
		st := pane
		if focused {
			st = focusStyle
			value = "◀ " + value + " ▶"
		}
		tui.DrawText(s, fx, line, st, value)
	}

	label("to")
	v.recipient.Draw(s, fx, line, fw, pane, focusStyle)
	line++

	label("from")
	v.sender.Draw(s, fx, line, fw, pane, focusStyle)
	line++

	label("they are my")
	cycler(string(model.Relationships[v.relIdx]), v.focus == focusRelationship)
	line++

	label("message")
	bodyH := 5
	bodyStyle := pane
	if v.focus == focusBody {
		bodyStyle = focusStyle
	}
	v.body.Draw(s, fx, line, fw, bodyH, bodyStyle)
	line += bodyH

	label("theme")
	name := string(th.ID)
	if th.Category == theme.CategoryHoliday {
		name += " ✦"
	}
	cycler(name, v.focus == focusTheme)
	line++

	label("public feed")
	cycler(onOff(v.public), v.focus == focusPublic)
	line++

	label("unlock at")
	v.unlock.Draw(s, fx, line, fw, pane, focusStyle)
	line++

	label("coupon")
	cycler(onOff(v.hasCoupon), v.focus == focusCoupon)
	line++

	if v.hasCoupon {
		label("  title")
		v.cpTitle.Draw(s, fx, line, fw, pane, focusStyle)
		line++

		label("  contact")
		v.cpContact.Draw(s, fx, line, fw, pane, focusStyle)
		line++

		label("  style")
		cycler(model.CouponStyles[v.cpStyleIdx], v.focus == focusCouponStyle)
		line++
	}

	label("track url")
	v.track.Draw(s, fx, line, fw, pane, focusStyle)
	line += 2

	status := "^S save  ^P preview  ^G write for me  ^T pick theme  ^F feed  esc quit"
	if v.busy {
		status = "✎ thinking..."
	}
	tui.DrawTextCentered(s, line, pane, status)

	v.toast.Draw(s, v.deps.clock().Now())
}

func onOff(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
